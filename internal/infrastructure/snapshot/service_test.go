package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phreebee/dockyard/internal/application/usecase"
	"github.com/phreebee/dockyard/internal/domain/entity"
	repomocks "github.com/phreebee/dockyard/internal/domain/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func layoutWith(panel string) *entity.DockLayout {
	return &entity.DockLayout{Entries: []entity.LayoutEntry{
		{Panel: panel, Edge: entity.EdgeLeft, Track: 100, Visible: true},
	}}
}

func TestService_DebouncesToLatestLayout(t *testing.T) {
	repo := repomocks.NewMockLayoutRepository(t)
	saved := make(chan *entity.DockLayout, 4)
	repo.EXPECT().
		Save(mock.Anything, mock.AnythingOfType("*entity.DockLayout")).
		RunAndReturn(func(_ context.Context, layout *entity.DockLayout) error {
			saved <- layout
			return nil
		})

	svc := NewService(usecase.NewPersistLayoutUseCase(repo, nil, nil), "20260301_100000_abcd", 20)
	svc.Start(context.Background())

	svc.MarkDirty(layoutWith("first"))
	svc.MarkDirty(layoutWith("second"))

	select {
	case got := <-saved:
		assert.Equal(t, "20260301_100000_abcd", got.SessionID)
		assert.Equal(t, "second", got.Entries[0].Panel)
	case <-time.After(time.Second):
		t.Fatal("expected debounced layout snapshot")
	}

	select {
	case <-saved:
		t.Fatal("only the latest layout is saved")
	case <-time.After(100 * time.Millisecond):
	}
	assert.False(t, svc.Pending())
}

func TestService_StopFlushesPending(t *testing.T) {
	repo := repomocks.NewMockLayoutRepository(t)
	repo.EXPECT().
		Save(mock.Anything, mock.AnythingOfType("*entity.DockLayout")).
		Return(nil).
		Once()

	svc := NewService(usecase.NewPersistLayoutUseCase(repo, nil, nil), "s1", 60_000)
	svc.Start(context.Background())
	svc.MarkDirty(layoutWith("outline"))

	require.NoError(t, svc.Stop(context.Background()))
	assert.False(t, svc.Pending())
	require.NoError(t, svc.SaveNow(context.Background()), "nothing left to save")
}

func TestService_FailedSaveStaysPending(t *testing.T) {
	repo := repomocks.NewMockLayoutRepository(t)
	boom := errors.New("database is locked")
	repo.EXPECT().
		Save(mock.Anything, mock.AnythingOfType("*entity.DockLayout")).
		Return(boom).
		Once()
	repo.EXPECT().
		Save(mock.Anything, mock.AnythingOfType("*entity.DockLayout")).
		Return(nil).
		Once()

	svc := NewService(usecase.NewPersistLayoutUseCase(repo, nil, nil), "s1", 60_000)
	svc.MarkDirty(layoutWith("outline"))

	err := svc.SaveNow(context.Background())
	require.ErrorIs(t, err, boom)
	assert.True(t, svc.Pending())

	require.NoError(t, svc.SaveNow(context.Background()))
	assert.False(t, svc.Pending())
}

func TestNewService_DefaultInterval(t *testing.T) {
	svc := NewService(nil, "s1", 0)
	assert.Equal(t, defaultIntervalMs*time.Millisecond, svc.interval)
}
