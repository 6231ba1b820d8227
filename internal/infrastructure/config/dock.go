package config

import (
	"errors"
	"fmt"

	"github.com/phreebee/dockyard/internal/domain/entity"
)

// SideSettings returns the configured geometry of every side.
func (c *Config) SideSettings() map[entity.Edge]entity.SideSettings {
	byEdge := map[entity.Edge]SideConfig{
		entity.EdgeLeft:    c.Dock.Sides.Left,
		entity.EdgeRight:   c.Dock.Sides.Right,
		entity.EdgeBottom:  c.Dock.Sides.Bottom,
		entity.EdgeTools:   c.Dock.Sides.Tools,
		entity.EdgeOptions: c.Dock.Sides.Options,
	}
	out := make(map[entity.Edge]entity.SideSettings, len(byEdge))
	for edge, side := range byEdge {
		out[edge] = entity.SideSettings{
			Track:     side.Track,
			FirstOpen: side.FirstOpen,
			Spacing:   c.Dock.Spacing,
			Slop:      c.Dock.SpacerSlop,
		}
	}
	return out
}

// PanelSpecs converts the roster into panel specs, in configuration order.
func (c *Config) PanelSpecs() ([]entity.PanelSpec, error) {
	specs := make([]entity.PanelSpec, 0, len(c.Panels))
	var errs []error
	for _, p := range c.Panels {
		spec, err := p.Spec()
		if err != nil {
			errs = append(errs, fmt.Errorf("panel %q: %w", p.Name, err))
			continue
		}
		specs = append(specs, spec)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return specs, nil
}

// Spec converts one roster entry.
func (p PanelConfig) Spec() (entity.PanelSpec, error) {
	id, err := panelID(p)
	if err != nil {
		return entity.PanelSpec{}, err
	}
	edge, err := entity.ParseEdge(p.Edge)
	if err != nil {
		return entity.PanelSpec{}, err
	}
	style, err := entity.ParseTrackStyle(p.Style)
	if err != nil {
		return entity.PanelSpec{}, err
	}
	return entity.PanelSpec{
		ID:      id,
		Name:    p.Name,
		Title:   p.Title,
		Edge:    edge,
		Solo:    p.Solo,
		Visible: p.Visible,
		Track:   p.Track,
		Style:   style,
	}, nil
}

func panelID(p PanelConfig) (entity.PanelID, error) {
	if p.ID == "" {
		return entity.PanelIDFromName(p.Name), nil
	}
	return entity.ParsePanelID(p.ID)
}
