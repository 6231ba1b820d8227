package model

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phreebee/dockyard/internal/application/usecase"
	"github.com/phreebee/dockyard/internal/cli/styles"
	"github.com/phreebee/dockyard/internal/domain/entity"
	"github.com/phreebee/dockyard/internal/infrastructure/config"
)

func newTestModel(t *testing.T, docs ...string) (DockModel, *usecase.DockManager) {
	t.Helper()
	cfg := config.DefaultConfig()
	specs, err := cfg.PanelSpecs()
	require.NoError(t, err)

	shell := NewPreviewShell(docs...)
	settings := usecase.DefaultDockSettings()
	dock, err := usecase.NewDockManager(shell, nil, settings, specs)
	require.NoError(t, err)
	shell.Register(dock.Panels())
	for _, p := range dock.Panels() {
		if p.Mode() == entity.ContentSolo {
			require.NoError(t, dock.AttachSolo(context.Background(), p.Name, NewTextContent(p.Title)))
		}
	}
	k, _ := shell.CurrentContext()
	require.NoError(t, dock.ViewSelect(context.Background(), k))

	m := NewDockModel(context.Background(), styles.NewTheme(), DockModelConfig{Dock: dock, Shell: shell})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	return updated.(DockModel), dock
}

func press(m DockModel, keys string) DockModel {
	var msg tea.KeyMsg
	switch keys {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	updated, _ := m.Update(msg)
	return updated.(DockModel)
}

func TestDockModel_RendersShownPanels(t *testing.T) {
	m, dock := newTestModel(t, "main.go", "notes.txt")

	view := m.View()
	assert.Contains(t, view, "Outline")
	assert.Contains(t, view, "Views")
	assert.Contains(t, view, "main.go")
	assert.NotContains(t, view, "Syntax", "unchecked panels stay hidden")

	outline, err := dock.PanelByName("outline")
	require.NoError(t, err)
	assert.False(t, outline.Hidden())
	assert.False(t, outline.Rect().Empty())
}

func TestDockModel_PlainTextHidesCollectionPanels(t *testing.T) {
	m, dock := newTestModel(t, "main.go", "notes.txt")

	m = press(m, "tab")
	assert.Equal(t, "Viewing notes.txt", m.Status())

	outline, err := dock.PanelByName("outline")
	require.NoError(t, err)
	assert.True(t, outline.Hidden())

	views, err := dock.PanelByName("views")
	require.NoError(t, err)
	assert.False(t, views.Hidden(), "solo panels keep showing")
}

func TestDockModel_NoDocumentKeepsSoloPanels(t *testing.T) {
	m, dock := newTestModel(t, "main.go")

	m = press(m, "n")
	assert.Equal(t, "No document", m.Status())

	outline, _ := dock.PanelByName("outline")
	find, _ := dock.PanelByName("find")
	assert.True(t, outline.Hidden())
	assert.False(t, find.Hidden())
	assert.Contains(t, m.View(), "no document")
}

func TestDockModel_TogglePanelByDigit(t *testing.T) {
	m, dock := newTestModel(t, "main.go")

	// The ninth roster entry is syntax, unchecked by default.
	m = press(m, "9")
	syntax, err := dock.PanelByName("syntax")
	require.NoError(t, err)
	assert.True(t, syntax.Checked)
	assert.False(t, syntax.Hidden())
	assert.Equal(t, "Syntax opened", m.Status())

	m = press(m, "9")
	assert.False(t, syntax.Checked)
	assert.True(t, syntax.Hidden())
}

func TestDockModel_DecorToggle(t *testing.T) {
	m, dock := newTestModel(t, "main.go")

	m = press(m, "d")
	assert.False(t, dock.DecorVisible())
	for _, p := range dock.Panels() {
		assert.True(t, p.Hidden(), p.Name)
	}
	assert.Contains(t, m.View(), "sides hidden")

	press(m, "d")
	assert.True(t, dock.DecorVisible())
}

func TestDockModel_FocusCyclesShownPanels(t *testing.T) {
	m, dock := newTestModel(t, "main.go")

	m = press(m, "f")
	focused := 0
	for _, p := range dock.Panels() {
		if p.State() == entity.ShowFocused {
			focused++
		}
	}
	assert.Equal(t, 1, focused)

	press(m, "esc")
	for _, p := range dock.Panels() {
		assert.NotEqual(t, entity.ShowFocused, p.State(), p.Name)
	}
}

func TestDockModel_CloseDocumentDisposesContent(t *testing.T) {
	m, dock := newTestModel(t, "main.go", "util.go")

	outline, _ := dock.PanelByName("outline")
	content, ok := outline.Collection().Find("main.go").(*TextContent)
	require.True(t, ok)

	m = press(m, "x")
	assert.Equal(t, "Closed main.go", m.Status())
	assert.True(t, content.Closed())
	assert.False(t, outline.Collection().Contains("main.go"))
	assert.True(t, outline.Collection().Contains("util.go"), "focus moved to the next document")
}

func TestDockModel_RightClickClosesPanel(t *testing.T) {
	m, dock := newTestModel(t, "main.go")

	outline, _ := dock.PanelByName("outline")
	r := toCells(outline.Rect())
	updated, _ := m.Update(tea.MouseMsg{X: r.x + 1, Y: r.y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	m = updated.(DockModel)

	assert.NoError(t, m.Err())
	assert.False(t, outline.Checked)
}

func TestToCells(t *testing.T) {
	assert.Equal(t, cellRect{x: 2, y: 1, w: 25, h: 5}, toCells(entity.Rect{X: 20, Y: 20, W: 250, H: 100}))
	x, y := toPixels(3, 2)
	assert.Equal(t, 35, x)
	assert.Equal(t, 50, y)
}

func mouse(m DockModel, x, y int, action tea.MouseAction, button tea.MouseButton) DockModel {
	updated, _ := m.Update(tea.MouseMsg{X: x, Y: y, Action: action, Button: button})
	return updated.(DockModel)
}

func TestDockModel_LostReleaseEndsDragAtLastPoint(t *testing.T) {
	tests := []struct {
		name string
		end  func(m DockModel, center cellRect) DockModel
	}{
		{"terminal loses focus", func(m DockModel, _ cellRect) DockModel {
			updated, _ := m.Update(tea.BlurMsg{})
			return updated.(DockModel)
		}},
		{"next press", func(m DockModel, center cellRect) DockModel {
			return mouse(m, center.x+1, center.y+1, tea.MouseActionPress, tea.MouseButtonLeft)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, dock := newTestModel(t, "main.go")
			outline, err := dock.PanelByName("outline")
			require.NoError(t, err)
			right, err := dock.Side(entity.EdgeRight)
			require.NoError(t, err)
			from, to := toCells(outline.Rect()), toCells(right.Rect())

			m = mouse(m, from.x+1, from.y+1, tea.MouseActionPress, tea.MouseButtonLeft)
			require.True(t, m.Dragging())
			m = mouse(m, to.x+1, to.y+1, tea.MouseActionMotion, tea.MouseButtonLeft)

			m = tt.end(m, toCells(dock.Center()))

			assert.False(t, m.Dragging())
			assert.NoError(t, m.Err())
			assert.Equal(t, entity.EdgeRight, outline.Edge())
		})
	}
}
