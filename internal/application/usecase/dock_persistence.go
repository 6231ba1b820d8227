package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/phreebee/dockyard/internal/domain/entity"
	"github.com/phreebee/dockyard/internal/logging"
)

// SaveLayout captures the current arrangement. Checked panels are written
// per side in visual order; unchecked panels follow them so that their edge
// and track survive too. The result is therefore a superset of the shown
// members: checked panels that are hidden for the current document and
// unchecked panels (Visible false) are included.
func (m *DockManager) SaveLayout(ctx context.Context) *entity.DockLayout {
	layout := &entity.DockLayout{
		Sides:   make(map[entity.Edge]int, len(m.sides)),
		SavedAt: time.Now(),
	}

	for _, e := range entity.Edges() {
		side := m.sides[e]
		layout.Sides[e] = m.persistedTrack(side)

		members := side.Members()
		for i, p := range members {
			layout.Entries = append(layout.Entries, entity.LayoutEntry{
				Panel:   p.ID.String(),
				Edge:    e,
				Order:   i,
				Track:   p.Track,
				Visible: true,
			})
		}
		order := len(members)
		for _, p := range m.panels {
			if p.Checked || p.Edge() != e {
				continue
			}
			layout.Entries = append(layout.Entries, entity.LayoutEntry{
				Panel: p.ID.String(),
				Edge:  e,
				Order: order,
				Track: p.Track,
			})
			order++
		}
	}

	logging.FromContext(ctx).Debug().Int("entries", len(layout.Entries)).Msg("layout saved")
	return layout
}

func (m *DockManager) persistedTrack(side *entity.Side) int {
	track := side.Track
	if saved, ok := m.savedTracks[side.Edge]; ok && m.decorHidden {
		track = saved
	}
	if track < m.settings.MinMargin {
		track = side.FirstOpen
	}
	return track
}

type placement struct {
	panel *entity.Panel
	order int
}

// LoadLayout applies a persisted arrangement and returns how many entries
// were applied. Entries naming unknown panels or sides are logged and
// skipped. Every edge an entry moves a panel from or to is rebuilt in
// persisted order, and its percentages are spread evenly when their sum
// leaves the accepted band.
func (m *DockManager) LoadLayout(ctx context.Context, layout *entity.DockLayout) int {
	if layout == nil {
		return 0
	}
	log := logging.FromContext(ctx)

	for _, e := range entity.Edges() {
		if _, ok := layout.Sides[e]; !ok {
			continue
		}
		side := m.sides[e]
		side.Track = layout.SideTrack(e)
		if side.Track >= m.settings.MinMargin {
			side.FirstOpen = side.Track
		}
		if m.decorHidden {
			m.savedTracks[e] = side.Track
		}
	}

	desired := make(map[entity.Edge][]placement)
	touched := make(map[entity.Edge]bool)
	unset := make(map[entity.Edge]bool)
	seen := make(map[*entity.Panel]bool)
	applied := 0

	for _, entry := range layout.Entries {
		if entry.Edge != entity.EdgeKeep && !entry.Edge.Valid() {
			m.sink.LogError(CategoryLayout, fmt.Sprintf("entry %q: %v", entry.Panel, entity.ErrUnknownEdge))
			continue
		}
		p := m.resolve(ctx, entry.Panel)
		if p == nil {
			m.sink.LogError(CategoryLayout, fmt.Sprintf("unknown panel %q skipped", entry.Panel))
			continue
		}
		edge := entry.Edge
		if edge == entity.EdgeKeep {
			edge = p.Edge()
		}
		if seen[p] {
			log.Debug().Str("panel", p.Name).Msg("duplicate layout entry skipped")
			continue
		}
		seen[p] = true
		applied++

		touched[p.Edge()] = true
		touched[edge] = true

		if !entry.Visible && p.Checked {
			if err := p.CloseAll(); err != nil {
				m.sink.LogError(CategoryContent, fmt.Sprintf("close %s: %v", p.Name, err))
			}
		}
		p.Checked = entry.Visible
		p.SetOrientation(edge)
		switch {
		case entry.Track >= 0:
			p.Track = entry.Track
		case entry.Track == entity.TrackKeep:
		case entry.Visible:
			unset[edge] = true
		}
		if entry.Visible {
			desired[edge] = append(desired[edge], placement{panel: p, order: entry.Order})
		}
	}

	for _, e := range entity.Edges() {
		if !touched[e] {
			continue
		}
		list := desired[e]
		sort.SliceStable(list, func(i, j int) bool { return list[i].order < list[j].order })

		ordered := make([]*entity.Panel, 0, len(list))
		for _, pl := range list {
			ordered = append(ordered, pl.panel)
		}
		// Checked panels the file does not mention keep their place after the listed ones.
		ordered = m.checkedOn(e, append(ordered, m.sides[e].Members()...))

		side := m.sides[e]
		sum := side.Load(ordered)
		if unset[e] || sum < entity.PercentSumMin || sum > entity.PercentSumMax {
			side.ResetPercent(true)
			log.Debug().Str("edge", e.String()).Int("track", sum).Msg("side percentages renormalized")
		}
	}

	log.Debug().Int("applied", applied).Int("entries", len(layout.Entries)).Msg("layout loaded")
	m.Shuffle(ctx)
	return applied
}

// resolve finds the panel an entry refers to: by decor id first, then by
// name for layouts written by older shells.
func (m *DockManager) resolve(ctx context.Context, ref string) *entity.Panel {
	if id, err := entity.ParsePanelID(ref); err == nil {
		if p, ok := m.byID[id]; ok {
			return p
		}
	}
	p, err := m.PanelByName(ref)
	if err != nil {
		return nil
	}
	logging.FromContext(ctx).Debug().Str("panel", p.Name).Msg("layout entry resolved by name")
	return p
}
