package port

//go:generate mockgen -source=shell.go -destination=mocks/mock_shell.go -package=mock_port

import (
	"context"

	"github.com/phreebee/dockyard/internal/domain/entity"
)

// Shell is the document host surrounding the dock.
// Implemented by the UI layer.
type Shell interface {
	// CurrentContext returns the key of the focused document or view.
	// ok is false when nothing is focused.
	CurrentContext() (key entity.ContextKey, ok bool)

	// Decorate asks the focused view to build content for a panel.
	// A nil handle with a nil error means the view has nothing to offer.
	Decorate(ctx context.Context, panel entity.PanelID, key entity.ContextKey) (entity.ContentHandle, error)
}
