package styles

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type confirmAnswer int

const (
	answerPending confirmAnswer = iota
	answerYes
	answerNo
)

type confirmKeys struct {
	Yes    key.Binding
	No     key.Binding
	Toggle key.Binding
	Accept key.Binding
	Cancel key.Binding
}

var defaultConfirmKeys = confirmKeys{
	Yes:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	No:     key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "no")),
	Toggle: key.NewBinding(key.WithKeys("left", "right", "h", "l", "tab"), key.WithHelp("←/→", "switch")),
	Accept: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "accept")),
	Cancel: key.NewBinding(key.WithKeys("esc", "ctrl+c", "q"), key.WithHelp("esc", "cancel")),
}

// ConfirmModel asks a destructive yes/no question. y and n answer at once;
// enter accepts the highlighted button, which starts on No.
type ConfirmModel struct {
	message  string
	selected bool
	answer   confirmAnswer
	theme    *Theme
	keys     confirmKeys
}

// NewConfirm creates a confirmation prompt for message.
func NewConfirm(theme *Theme, message string) ConfirmModel {
	return ConfirmModel{message: message, theme: theme, keys: defaultConfirmKeys}
}

// Init implements tea.Model.
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || m.answer != answerPending {
		return m, nil
	}

	switch {
	case key.Matches(km, m.keys.Yes):
		m.answer = answerYes
	case key.Matches(km, m.keys.No), key.Matches(km, m.keys.Cancel):
		m.answer = answerNo
	case key.Matches(km, m.keys.Toggle):
		m.selected = !m.selected
	case key.Matches(km, m.keys.Accept):
		m.answer = answerNo
		if m.selected {
			m.answer = answerYes
		}
	}

	if m.answer != answerPending {
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m ConfirmModel) View() string {
	if m.answer != answerPending {
		return ""
	}
	t := m.theme

	yes, no := t.BadgeMuted, t.Badge
	if m.selected {
		yes, no = t.Badge, t.BadgeMuted
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, no.Render(" No "), "  ", yes.Render(" Yes "))

	return t.Box.Render(lipgloss.JoinVertical(
		lipgloss.Center,
		t.WarningStyle.Render(IconTrash)+" "+t.Title.Render(m.message),
		"",
		buttons,
		"",
		t.Subtle.Render("y/n answer • ←/→ switch • enter accept • esc cancel"),
	))
}

// Answered reports whether the prompt has an answer.
func (m ConfirmModel) Answered() bool {
	return m.answer != answerPending
}

// Confirmed reports whether the answer was yes.
func (m ConfirmModel) Confirmed() bool {
	return m.answer == answerYes
}

// AskConfirm runs a confirmation prompt on the terminal and reports the answer.
func AskConfirm(theme *Theme, message string) (bool, error) {
	final, err := tea.NewProgram(NewConfirm(theme, message)).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ConfirmModel)
	return ok && m.Confirmed(), nil
}
