package usecase

import (
	"context"

	"github.com/phreebee/dockyard/internal/domain/entity"
	"github.com/phreebee/dockyard/internal/logging"
)

// DragKind tells what a pointer drag is moving.
type DragKind int

const (
	DragSpacer   DragKind = iota + 1 // Resizing two neighbours
	DragPanel                        // Redocking a panel
	DragSideEdge                     // Resizing a whole side by its document border
)

func (k DragKind) String() string {
	switch k {
	case DragSpacer:
		return "spacer"
	case DragPanel:
		return "panel"
	case DragSideEdge:
		return "side-edge"
	default:
		return "none"
	}
}

// DragState is an in-progress pointer drag, passed back on every move.
type DragState struct {
	Kind   DragKind
	Panel  entity.PanelID
	Spacer entity.SpacerDrag
	Border entity.BorderDrag
	Start  entity.Point
	Last   entity.Point
}

// Hover reports the spacer under the pointer, for a resize cursor.
func (m *DockManager) Hover(x, y int) (entity.Spacer, bool) {
	for _, e := range entity.Edges() {
		side := m.sides[e]
		if side.Hidden() {
			continue
		}
		if sp, ok := side.HitTestSpacers(x, y); ok {
			m.hover = &sp
			return sp, true
		}
	}
	m.hover = nil
	return entity.Spacer{}, false
}

// HoverStop clears the hover cue.
func (m *DockManager) HoverStop() {
	m.hover = nil
}

// Hovered returns the spacer under the pointer at the last Hover call.
func (m *DockManager) Hovered() (entity.Spacer, bool) {
	if m.hover == nil {
		return entity.Spacer{}, false
	}
	return *m.hover, true
}

// BeginDrag starts a drag at the point. A side's document border wins over
// a spacer, and a spacer over the shown panel under the point.
func (m *DockManager) BeginDrag(ctx context.Context, x, y int) (DragState, bool) {
	pt := entity.Point{X: x, Y: y}
	for _, e := range entity.Edges() {
		side := m.sides[e]
		if side.Hidden() {
			continue
		}
		cross := e.Axis().Perpendicular()
		limit := side.Rect().Extent(cross) + m.center.Extent(cross)
		if bd, ok := side.BeginBorderDrag(x, y, limit); ok {
			logging.FromContext(ctx).Debug().Str("edge", e.String()).Int("track", side.Track).Msg("side resize started")
			return DragState{Kind: DragSideEdge, Border: bd, Start: pt, Last: pt}, true
		}
	}
	for _, e := range entity.Edges() {
		side := m.sides[e]
		if side.Hidden() {
			continue
		}
		if sd, ok := side.BeginSpacerDrag(x, y); ok {
			logging.FromContext(ctx).Debug().Str("edge", e.String()).Int("spacer", sd.Index).Msg("spacer drag started")
			return DragState{Kind: DragSpacer, Spacer: sd, Start: pt, Last: pt}, true
		}
	}
	if p, ok := m.PanelAt(x, y); ok {
		logging.FromContext(ctx).Debug().Str("panel", p.Name).Msg("panel drag started")
		return DragState{Kind: DragPanel, Panel: p.ID, Start: pt, Last: pt}, true
	}
	return DragState{}, false
}

// UpdateDrag follows the pointer. Spacer and side drags resize live; panel
// drags only track the point until release.
func (m *DockManager) UpdateDrag(ctx context.Context, ds DragState, x, y int) DragState {
	ds.Last = entity.Point{X: x, Y: y}
	switch ds.Kind {
	case DragSpacer:
		if side, ok := m.sides[ds.Spacer.Edge]; ok {
			ds.Spacer = side.ApplySpacerDrag(ds.Spacer, x, y)
		}
	case DragSideEdge:
		if side, ok := m.sides[ds.Border.Edge]; ok {
			ds.Border = side.ApplyBorderDrag(ds.Border, x, y)
			m.relayout(ctx)
		}
	}
	return ds
}

// EndDrag finishes the drag at its last known point.
func (m *DockManager) EndDrag(ctx context.Context, ds DragState) error {
	switch ds.Kind {
	case DragSpacer:
		side, err := m.Side(ds.Spacer.Edge)
		if err != nil {
			m.sink.LogError(CategoryLayout, err.Error())
			return err
		}
		side.EndSpacerDrag(ds.Spacer)
		logging.FromContext(ctx).Debug().Str("edge", side.Edge.String()).Msg("spacer drag finished")
		return nil
	case DragPanel:
		return m.FinishDrag(ctx, ds.Panel, ds.Last)
	case DragSideEdge:
		return m.endSideDrag(ctx, ds)
	default:
		return nil
	}
}

// endSideDrag settles a side resize. A side left thinner than the minimum
// margin is closed by unchecking its panels, so reopening one restores the
// side's first-open thickness.
func (m *DockManager) endSideDrag(ctx context.Context, ds DragState) error {
	side, err := m.Side(ds.Border.Edge)
	if err != nil {
		m.sink.LogError(CategoryLayout, err.Error())
		return err
	}
	side.ApplyBorderDrag(ds.Border, ds.Last.X, ds.Last.Y)
	log := logging.FromContext(ctx)

	if side.Track >= max(m.settings.MinMargin, 1) {
		log.Debug().Str("edge", side.Edge.String()).Int("track", side.Track).Msg("side resized")
		m.relayout(ctx)
		return nil
	}

	log.Debug().Str("edge", side.Edge.String()).Int("track", side.Track).Msg("side dragged shut")
	for _, p := range side.Members() {
		if !p.Checked {
			continue
		}
		if err := m.SetState(ctx, p.ID, false); err != nil {
			return err
		}
	}
	m.relayout(ctx)
	return nil
}

// CancelDrag ends a drag whose release was lost, for instance outside the
// window. It behaves like EndDrag at the last known point.
func (m *DockManager) CancelDrag(ctx context.Context, ds DragState) error {
	return m.EndDrag(ctx, ds)
}
