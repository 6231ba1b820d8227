package sqlite

import (
	"context"
	"sync"

	"github.com/phreebee/dockyard/internal/application/port"
	"github.com/phreebee/dockyard/internal/domain/entity"
	"github.com/phreebee/dockyard/internal/domain/repository"
)

// LazyLayoutRepository wraps a layout repository with lazy database initialization.
type LazyLayoutRepository struct {
	provider port.DatabaseProvider
	repo     repository.LayoutRepository
	once     sync.Once
	initErr  error
}

// NewLazyLayoutRepository creates a lazy-loading layout repository.
func NewLazyLayoutRepository(provider port.DatabaseProvider) repository.LayoutRepository {
	return &LazyLayoutRepository{provider: provider}
}

func (r *LazyLayoutRepository) init(ctx context.Context) error {
	r.once.Do(func() {
		db, err := r.provider.DB(ctx)
		if err != nil {
			r.initErr = err
			return
		}
		r.repo = NewLayoutRepository(db)
	})
	return r.initErr
}

func (r *LazyLayoutRepository) Save(ctx context.Context, layout *entity.DockLayout) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Save(ctx, layout)
}

func (r *LazyLayoutRepository) Get(ctx context.Context, sessionID string) (*entity.DockLayout, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.Get(ctx, sessionID)
}

func (r *LazyLayoutRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Delete(ctx, sessionID)
}

func (r *LazyLayoutRepository) List(ctx context.Context) ([]*entity.DockLayout, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.List(ctx)
}
