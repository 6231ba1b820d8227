package repository

import (
	"context"

	"github.com/phreebee/dockyard/internal/domain/entity"
)

// LayoutRepository persists docking layout snapshots.
type LayoutRepository interface {
	// Save stores the layout, replacing any earlier one for the same session.
	Save(ctx context.Context, layout *entity.DockLayout) error

	// Get returns the layout for a session, or nil when none is stored.
	Get(ctx context.Context, sessionID string) (*entity.DockLayout, error)

	// Delete removes a session's layout.
	Delete(ctx context.Context, sessionID string) error

	// List returns every stored layout, most recent first.
	List(ctx context.Context) ([]*entity.DockLayout, error)
}
