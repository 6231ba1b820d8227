// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/phreebee/dockyard/internal/application/usecase"
	"github.com/phreebee/dockyard/internal/cli/styles"
	"github.com/phreebee/dockyard/internal/domain/entity"
	"github.com/phreebee/dockyard/internal/infrastructure/snapshot"
	"github.com/phreebee/dockyard/internal/logging"
)

// A terminal cell stands for a block of dock pixels.
const (
	CellWidth  = 10
	CellHeight = 20

	footerRows = 2
)

// ConfigReloadedMsg tells the preview the configuration file changed.
type ConfigReloadedMsg struct{}

// DockModel is the Bubble Tea model of the interactive dock preview. It
// drives a real DockManager from keys and the mouse.
type DockModel struct {
	help help.Model
	keys dockKeyMap

	width  int
	height int
	drag   *usecase.DragState
	status string
	err    error

	ctx      context.Context
	dock     *usecase.DockManager
	shell    *PreviewShell
	autosave *snapshot.Service
	theme    *styles.Theme
	focusIdx int
}

type dockKeyMap struct {
	NextDoc    key.Binding
	PrevDoc    key.Binding
	NoDoc      key.Binding
	CloseDoc   key.Binding
	Toggle     key.Binding
	Decor      key.Binding
	FocusPanel key.Binding
	FocusDoc   key.Binding
	Save       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func (k dockKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextDoc, k.Toggle, k.Decor, k.FocusPanel, k.Help, k.Quit}
}

func (k dockKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextDoc, k.PrevDoc, k.NoDoc, k.CloseDoc},
		{k.Toggle, k.Decor, k.FocusPanel, k.FocusDoc},
		{k.Save, k.Help, k.Quit},
	}
}

func defaultDockKeyMap() dockKeyMap {
	return dockKeyMap{
		NextDoc: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next document"),
		),
		PrevDoc: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous document"),
		),
		NoDoc: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "no document"),
		),
		CloseDoc: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close document"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"),
			key.WithHelp("1-0", "toggle panel"),
		),
		Decor: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "hide/show sides"),
		),
		FocusPanel: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "focus next panel"),
		),
		FocusDoc: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "focus document"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save layout"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// DockModelConfig holds the dependencies of the preview.
type DockModelConfig struct {
	Dock     *usecase.DockManager
	Shell    *PreviewShell
	Autosave *snapshot.Service // optional
}

// NewDockModel creates the preview model.
func NewDockModel(ctx context.Context, theme *styles.Theme, cfg DockModelConfig) DockModel {
	return DockModel{
		help:     help.New(),
		keys:     defaultDockKeyMap(),
		width:    80,
		height:   24,
		ctx:      ctx,
		dock:     cfg.Dock,
		shell:    cfg.Shell,
		autosave: cfg.Autosave,
		theme:    theme,
		focusIdx: -1,
	}
}

// Init implements tea.Model.
func (m DockModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m DockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg), nil

	case tea.BlurMsg:
		// The release of a drag may land outside the terminal.
		m.cancelDrag()
		return m, nil

	case ConfigReloadedMsg:
		m.status = "Configuration reloaded, roster changes apply on restart"
		return m, nil
	}
	return m, nil
}

func (m DockModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	log := logging.FromContext(m.ctx)
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.flush()
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextDoc):
		k, _ := m.shell.Cycle(1)
		m.selectView(k)

	case key.Matches(msg, m.keys.PrevDoc):
		k, _ := m.shell.Cycle(-1)
		m.selectView(k)

	case key.Matches(msg, m.keys.NoDoc):
		m.shell.Unfocus()
		m.selectView(entity.NoKey)

	case key.Matches(msg, m.keys.CloseDoc):
		closed, ok := m.shell.CloseCurrent()
		if !ok {
			m.status = "No document to close"
			return m, nil
		}
		m.dock.CloseDocument(m.ctx, closed)
		m.status = fmt.Sprintf("Closed %s", closed)
		m.changed()

	case key.Matches(msg, m.keys.Toggle):
		m.togglePanel(msg.String())

	case key.Matches(msg, m.keys.Decor):
		m.dock.ToggleDecor(m.ctx)
		m.changed()

	case key.Matches(msg, m.keys.FocusPanel):
		m.focusNextPanel()

	case key.Matches(msg, m.keys.FocusDoc):
		m.dock.OnCenterFocused(m.ctx)
		m.focusIdx = -1

	case key.Matches(msg, m.keys.Save):
		if m.autosave == nil {
			m.status = "Autosave is off"
			return m, nil
		}
		m.autosave.MarkDirty(m.dock.SaveLayout(m.ctx))
		if err := m.autosave.SaveNow(m.ctx); err != nil {
			log.Error().Err(err).Msg("layout save failed")
			m.err = err
			return m, nil
		}
		m.status = "Layout saved"

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *DockModel) handleMouseMsg(msg tea.MouseMsg) DockModel {
	x, y := toPixels(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		m.cancelDrag()
		switch msg.Button {
		case tea.MouseButtonLeft:
			if ds, ok := m.dock.BeginDrag(m.ctx, x, y); ok {
				m.drag = &ds
			}
		case tea.MouseButtonRight:
			if err := m.dock.ClosePanelAt(m.ctx, x, y); err != nil {
				if !errors.Is(err, entity.ErrPanelNotFound) {
					m.err = err
				}
				break
			}
			m.changed()
		}

	case tea.MouseActionMotion:
		if m.drag != nil {
			ds := m.dock.UpdateDrag(m.ctx, *m.drag, x, y)
			m.drag = &ds
			break
		}
		if _, ok := m.dock.Hover(x, y); !ok {
			m.dock.HoverStop()
		}

	case tea.MouseActionRelease:
		if m.drag == nil {
			break
		}
		ds := m.dock.UpdateDrag(m.ctx, *m.drag, x, y)
		m.drag = nil
		if err := m.dock.EndDrag(m.ctx, ds); err != nil {
			m.err = err
		}
		m.changed()
	}
	return *m
}

// cancelDrag ends a drag whose release never arrived, at the last point seen.
func (m *DockModel) cancelDrag() {
	if m.drag == nil {
		return
	}
	ds := *m.drag
	m.drag = nil
	if err := m.dock.CancelDrag(m.ctx, ds); err != nil {
		m.err = err
	}
	m.changed()
}

// Dragging reports whether a pointer drag is in progress.
func (m DockModel) Dragging() bool { return m.drag != nil }

func (m *DockModel) selectView(k entity.ContextKey) {
	if err := m.dock.ViewSelect(m.ctx, k); err != nil {
		m.err = err
		return
	}
	if k == entity.NoKey {
		m.status = "No document"
	} else {
		m.status = fmt.Sprintf("Viewing %s", k)
	}
	m.focusIdx = -1
	m.changed()
}

// togglePanel flips the roster entry bound to the digit: 1 is the first
// panel, 0 the tenth.
func (m *DockModel) togglePanel(digit string) {
	n, err := strconv.Atoi(digit)
	if err != nil {
		return
	}
	idx := n - 1
	if n == 0 {
		idx = 9
	}
	panels := m.dock.Panels()
	if idx < 0 || idx >= len(panels) {
		m.status = fmt.Sprintf("No panel %s", digit)
		return
	}
	p := panels[idx]
	if err := m.dock.Toggle(m.ctx, p.ID); err != nil {
		m.err = err
		return
	}
	state := "closed"
	if p.Checked {
		state = "opened"
	}
	m.status = fmt.Sprintf("%s %s", p.Title, state)
	m.changed()
}

func (m *DockModel) focusNextPanel() {
	panels := m.dock.Panels()
	for step := 1; step <= len(panels); step++ {
		idx := (m.focusIdx + step) % len(panels)
		if idx < 0 {
			idx += len(panels)
		}
		if panels[idx].Hidden() {
			continue
		}
		if err := m.dock.FocusPanel(m.ctx, panels[idx].ID); err != nil {
			m.err = err
			return
		}
		m.focusIdx = idx
		m.status = fmt.Sprintf("Focus on %s", panels[idx].Title)
		return
	}
	m.status = "No panel to focus"
}

// changed lays the dock out again and hands the new arrangement to autosave.
func (m *DockModel) changed() {
	m.layout()
	if m.autosave != nil {
		m.autosave.MarkDirty(m.dock.SaveLayout(m.ctx))
	}
}

func (m *DockModel) layout() {
	m.dock.LayoutFrame(m.ctx, m.frame())
}

func (m *DockModel) flush() {
	if m.autosave == nil {
		return
	}
	m.autosave.MarkDirty(m.dock.SaveLayout(m.ctx))
	if err := m.autosave.Stop(m.ctx); err != nil {
		logging.FromContext(m.ctx).Error().Err(err).Msg("final layout save failed")
	}
}

func (m DockModel) frame() entity.Rect {
	rows := max(m.height-footerRows, 0)
	return entity.Rect{W: m.width * CellWidth, H: rows * CellHeight}
}

// Status returns the last status line message.
func (m DockModel) Status() string { return m.status }

// Err returns the error of the last action, if any.
func (m DockModel) Err() error { return m.err }

func toPixels(col, row int) (int, int) {
	return col*CellWidth + CellWidth/2, row*CellHeight + CellHeight/2
}
