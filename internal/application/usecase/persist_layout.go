package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/phreebee/dockyard/internal/application/port"
	"github.com/phreebee/dockyard/internal/domain/entity"
	"github.com/phreebee/dockyard/internal/domain/repository"
	"github.com/phreebee/dockyard/internal/logging"
)

// ErrLayoutNotFound is returned when no layout is stored for a session.
var ErrLayoutNotFound = errors.New("layout not found")

// LayoutHolder is a live dock whose arrangement can be captured and applied.
// *DockManager implements it.
type LayoutHolder interface {
	SaveLayout(ctx context.Context) *entity.DockLayout
	LoadLayout(ctx context.Context, layout *entity.DockLayout) int
}

// PersistLayoutUseCase moves dock layouts between a live dock, the layout
// repository and session files.
type PersistLayoutUseCase struct {
	repo  repository.LayoutRepository
	codec port.LayoutCodec
	sink  port.ErrorSink
}

// NewPersistLayoutUseCase creates a new layout persistence use case.
func NewPersistLayoutUseCase(repo repository.LayoutRepository, codec port.LayoutCodec, sink port.ErrorSink) *PersistLayoutUseCase {
	if sink == nil {
		sink = nopSink{}
	}
	return &PersistLayoutUseCase{repo: repo, codec: codec, sink: sink}
}

// Snapshot stores the dock's current arrangement under sessionID.
func (uc *PersistLayoutUseCase) Snapshot(ctx context.Context, dock LayoutHolder, sessionID string) (*entity.DockLayout, error) {
	if sessionID == "" {
		return nil, errors.New("session id cannot be empty")
	}
	return uc.Store(ctx, dock.SaveLayout(ctx), sessionID)
}

// Store saves an already captured layout under sessionID.
func (uc *PersistLayoutUseCase) Store(ctx context.Context, layout *entity.DockLayout, sessionID string) (*entity.DockLayout, error) {
	if sessionID == "" {
		return nil, errors.New("session id cannot be empty")
	}
	if layout == nil {
		return nil, errors.New("layout cannot be nil")
	}
	layout.SessionID = sessionID
	if layout.SavedAt.IsZero() {
		layout.SavedAt = time.Now()
	}

	if err := uc.repo.Save(ctx, layout); err != nil {
		return nil, fmt.Errorf("save layout %s: %w", sessionID, err)
	}
	logging.FromContext(ctx).Info().
		Str("session_id", sessionID).
		Int("entries", len(layout.Entries)).
		Msg("layout snapshot saved")
	return layout, nil
}

// Restore applies the layout stored under sessionID. It reports false when
// nothing is stored.
func (uc *PersistLayoutUseCase) Restore(ctx context.Context, dock LayoutHolder, sessionID string) (bool, error) {
	layout, err := uc.repo.Get(ctx, sessionID)
	if err != nil {
		return false, fmt.Errorf("get layout %s: %w", sessionID, err)
	}
	if layout == nil {
		logging.FromContext(ctx).Debug().Str("session_id", sessionID).Msg("no stored layout")
		return false, nil
	}
	applied := dock.LoadLayout(ctx, layout)
	logging.FromContext(ctx).Info().
		Str("session_id", sessionID).
		Int("applied", applied).
		Msg("layout restored")
	return true, nil
}

// Export writes the layout stored under sessionID as a session sub-tree.
func (uc *PersistLayoutUseCase) Export(ctx context.Context, sessionID string, w io.Writer) error {
	layout, err := uc.repo.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("get layout %s: %w", sessionID, err)
	}
	if layout == nil {
		return fmt.Errorf("%w: %s", ErrLayoutNotFound, sessionID)
	}
	return uc.codec.Encode(w, layout)
}

// ExportLive writes the dock's current arrangement as a session sub-tree.
func (uc *PersistLayoutUseCase) ExportLive(ctx context.Context, dock LayoutHolder, w io.Writer) error {
	return uc.codec.Encode(w, dock.SaveLayout(ctx))
}

// Import reads a session sub-tree and stores it under sessionID. Malformed
// records are reported to the error sink and left out.
func (uc *PersistLayoutUseCase) Import(ctx context.Context, sessionID string, r io.Reader) (*entity.DockLayout, error) {
	if sessionID == "" {
		return nil, errors.New("session id cannot be empty")
	}
	layout, err := uc.decode(r)
	if err != nil {
		return nil, err
	}
	return uc.Store(ctx, layout, sessionID)
}

// ImportLive reads a session sub-tree and applies it to the dock.
func (uc *PersistLayoutUseCase) ImportLive(ctx context.Context, dock LayoutHolder, r io.Reader) (int, error) {
	layout, err := uc.decode(r)
	if err != nil {
		return 0, err
	}
	return dock.LoadLayout(ctx, layout), nil
}

// List returns every stored layout.
func (uc *PersistLayoutUseCase) List(ctx context.Context) ([]*entity.DockLayout, error) {
	return uc.repo.List(ctx)
}

// Delete removes the layout stored under sessionID.
func (uc *PersistLayoutUseCase) Delete(ctx context.Context, sessionID string) error {
	logging.FromContext(ctx).Debug().Str("session_id", sessionID).Msg("deleting layout")
	return uc.repo.Delete(ctx, sessionID)
}

func (uc *PersistLayoutUseCase) decode(r io.Reader) (*entity.DockLayout, error) {
	layout, warnings, err := uc.codec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	for _, w := range warnings {
		uc.sink.LogError(CategoryLayout, w.Error())
	}
	return layout, nil
}
