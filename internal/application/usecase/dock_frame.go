package usecase

import (
	"context"
	"fmt"

	"github.com/phreebee/dockyard/internal/domain/entity"
	"github.com/phreebee/dockyard/internal/logging"
)

// LayoutFrame splits the shell frame between the sides and the document
// area, lays out every shown side and returns the document rectangle.
//
// The bottom strip spans the full width. Above it sit the left, tools,
// document and right columns; the options strip tops the document column.
func (m *DockManager) LayoutFrame(ctx context.Context, frame entity.Rect) entity.Rect {
	m.frame = frame
	if frame.Empty() {
		m.center = entity.Rect{}
		return m.center
	}

	thickness := func(e entity.Edge, limit int) int {
		s := m.sides[e]
		if s.Hidden() {
			return 0
		}
		return min(max(s.Track, 0), max(limit, 0))
	}

	bottomH := thickness(entity.EdgeBottom, frame.H)
	upperH := frame.H - bottomH
	leftW := thickness(entity.EdgeLeft, frame.W)
	toolsW := thickness(entity.EdgeTools, frame.W-leftW)
	rightW := thickness(entity.EdgeRight, frame.W-leftW-toolsW)
	centerX := frame.X + leftW + toolsW
	centerW := frame.W - leftW - toolsW - rightW
	optionsH := thickness(entity.EdgeOptions, upperH)

	rects := map[entity.Edge]entity.Rect{
		entity.EdgeBottom:  {X: frame.X, Y: frame.Y + upperH, W: frame.W, H: bottomH},
		entity.EdgeLeft:    {X: frame.X, Y: frame.Y, W: leftW, H: upperH},
		entity.EdgeTools:   {X: frame.X + leftW, Y: frame.Y, W: toolsW, H: upperH},
		entity.EdgeRight:   {X: centerX + centerW, Y: frame.Y, W: rightW, H: upperH},
		entity.EdgeOptions: {X: centerX, Y: frame.Y, W: centerW, H: optionsH},
	}

	log := logging.FromContext(ctx)
	for _, e := range entity.Edges() {
		side := m.sides[e]
		r := rects[e]
		if side.Hidden() || r.Empty() {
			side.SetRect(entity.Rect{})
			continue
		}
		side.SetRect(r)
		if err := side.LayoutChildren(); err != nil {
			log.Debug().Err(err).Str("edge", e.String()).Msg("side layout skipped")
		}
	}

	m.center = entity.Rect{X: centerX, Y: frame.Y + optionsH, W: centerW, H: upperH - optionsH}
	return m.center
}

// Frame returns the last shell frame laid out.
func (m *DockManager) Frame() entity.Rect { return m.frame }

// Center returns the document rectangle of the last layout.
func (m *DockManager) Center() entity.Rect { return m.center }

// FocusPanel moves keyboard focus into a shown panel and blurs the others.
func (m *DockManager) FocusPanel(ctx context.Context, id entity.PanelID) error {
	p, err := m.Panel(id)
	if err != nil {
		return err
	}
	if p.Hidden() {
		logging.FromContext(ctx).Debug().Str("panel", p.Name).Msg("focus on hidden panel ignored")
		return nil
	}
	for _, q := range m.panels {
		if q != p {
			q.OnFocusLost()
		}
	}
	p.OnFocusGained()
	key, _ := m.shell.CurrentContext()
	p.FocusContent(key)
	return nil
}

// OnCenterFocused blurs every panel when the document area takes focus.
func (m *DockManager) OnCenterFocused(_ context.Context) {
	for _, p := range m.panels {
		p.OnFocusLost()
	}
}

// DecorVisible reports whether the sides are shown at all.
func (m *DockManager) DecorVisible() bool { return !m.decorHidden }

// SetDecorVisible hides or restores every side at once. Side thickness is
// remembered while hidden.
func (m *DockManager) SetDecorVisible(ctx context.Context, visible bool) {
	if visible == !m.decorHidden {
		return
	}
	logging.FromContext(ctx).Debug().Bool("visible", visible).Msg("decor visibility changed")

	if !visible {
		for _, e := range entity.Edges() {
			m.savedTracks[e] = m.sides[e].Track
		}
		m.decorHidden = true
		m.Shuffle(ctx)
		return
	}

	m.decorHidden = false
	for _, e := range entity.Edges() {
		if track, ok := m.savedTracks[e]; ok {
			m.sides[e].Track = track
		}
	}
	clear(m.savedTracks)
	m.Shuffle(ctx)
}

// ToggleDecor flips the visibility of all sides.
func (m *DockManager) ToggleDecor(ctx context.Context) {
	m.SetDecorVisible(ctx, m.decorHidden)
}

// CloseDocument disposes the content every panel holds for key and reshuffles.
func (m *DockManager) CloseDocument(ctx context.Context, key entity.ContextKey) {
	closed := 0
	for _, p := range m.panels {
		c := p.Unbind(key)
		if c == nil {
			continue
		}
		closed++
		if err := c.Close(); err != nil {
			m.sink.LogError(CategoryContent, fmt.Sprintf("close %s for %q: %v", p.Name, key, err))
		}
	}
	logging.FromContext(ctx).Debug().
		Str("context_key", string(key)).
		Int("closed", closed).
		Msg("document content closed")
	m.Shuffle(ctx)
}

// PanelAt returns the shown panel under the point.
func (m *DockManager) PanelAt(x, y int) (*entity.Panel, bool) {
	for _, e := range entity.Edges() {
		side := m.sides[e]
		if side.Hidden() {
			continue
		}
		for _, p := range side.Members() {
			if p.Contains(x, y) {
				return p, true
			}
		}
	}
	return nil, false
}

// ClosePanelAt unchecks the panel under the point.
func (m *DockManager) ClosePanelAt(ctx context.Context, x, y int) error {
	p, ok := m.PanelAt(x, y)
	if !ok {
		return fmt.Errorf("%w at %d,%d", entity.ErrPanelNotFound, x, y)
	}
	return m.SetState(ctx, p.ID, false)
}
