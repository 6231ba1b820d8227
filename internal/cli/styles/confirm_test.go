package styles_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/phreebee/dockyard/internal/cli/styles"
)

func sendKeys(m tea.Model, msgs ...tea.KeyMsg) (styles.ConfirmModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m.(styles.ConfirmModel), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConfirmModel(t *testing.T) {
	theme := styles.NewTheme()

	tests := []struct {
		name string
		keys []tea.KeyMsg
		want bool
	}{
		{"y answers yes", []tea.KeyMsg{runes("y")}, true},
		{"n answers no", []tea.KeyMsg{runes("n")}, false},
		{"enter defaults to no", []tea.KeyMsg{{Type: tea.KeyEnter}}, false},
		{"switch then enter", []tea.KeyMsg{{Type: tea.KeyRight}, {Type: tea.KeyEnter}}, true},
		{"escape cancels", []tea.KeyMsg{{Type: tea.KeyRight}, {Type: tea.KeyEsc}}, false},
		{"answer is final", []tea.KeyMsg{runes("n"), runes("y")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := sendKeys(styles.NewConfirm(theme, "Delete layout s1?"), tt.keys...)
			assert.True(t, m.Answered())
			assert.Equal(t, tt.want, m.Confirmed())
			assert.Empty(t, m.View())
		})
	}
}

func TestConfirmModel_PendingView(t *testing.T) {
	m := styles.NewConfirm(styles.NewTheme(), "Delete layout s1?")
	m, cmd := sendKeys(m, tea.KeyMsg{Type: tea.KeyLeft})

	assert.Nil(t, cmd)
	assert.False(t, m.Answered())
	view := m.View()
	assert.Contains(t, view, "Delete layout s1?")
	assert.Contains(t, view, "Yes")
	assert.Contains(t, view, "No")
}
