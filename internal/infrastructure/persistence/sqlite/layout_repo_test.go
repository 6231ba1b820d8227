package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/phreebee/dockyard/internal/domain/entity"
	"github.com/phreebee/dockyard/internal/infrastructure/persistence/sqlite"
	"github.com/phreebee/dockyard/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.NewConnection(testCtx(), filepath.Join(t.TempDir(), "nested", "dockyard.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestLayoutRepository_CRUD(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewLayoutRepository(openTestDB(t))

	savedAt := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)
	layout := &entity.DockLayout{
		SessionID: "20260314_092653_abcd",
		Sides:     map[entity.Edge]int{entity.EdgeLeft: 320, entity.EdgeBottom: 0},
		Entries: []entity.LayoutEntry{
			{Panel: "{64ec31fe-f28e-49a6-a12a-9194214dd0d6}", Edge: entity.EdgeLeft, Order: 0, Track: 40, Visible: true},
			{Panel: "properties", Edge: entity.EdgeLeft, Order: 1, Track: entity.TrackUnset, Visible: true},
			{Panel: "syntax", Edge: entity.EdgeBottom, Order: 0, Track: 100, Visible: false},
			{Panel: "clock", Edge: entity.EdgeKeep, Order: 3, Track: entity.TrackKeep, Visible: true},
		},
		SavedAt: savedAt,
	}
	require.NoError(t, repo.Save(ctx, layout))

	got, err := repo.Get(ctx, layout.SessionID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, layout.SessionID, got.SessionID)
	assert.True(t, got.SavedAt.Equal(savedAt))
	assert.Equal(t, layout.Sides, got.Sides)
	assert.Equal(t, layout.Entries, got.Entries)

	missing, err := repo.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.Delete(ctx, layout.SessionID))
	gone, err := repo.Get(ctx, layout.SessionID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestLayoutRepository_SaveReplaces(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewLayoutRepository(openTestDB(t))

	require.NoError(t, repo.Save(ctx, &entity.DockLayout{
		SessionID: "s1",
		Sides:     map[entity.Edge]int{entity.EdgeRight: 200},
		Entries: []entity.LayoutEntry{
			{Panel: "a", Edge: entity.EdgeRight, Track: 50, Visible: true},
			{Panel: "b", Edge: entity.EdgeRight, Order: 1, Track: 50, Visible: true},
		},
	}))
	require.NoError(t, repo.Save(ctx, &entity.DockLayout{
		SessionID: "s1",
		Entries: []entity.LayoutEntry{
			{Panel: "c", Edge: entity.EdgeTools, Track: 100, Visible: true},
			{Panel: "bad", Edge: entity.Edge(42), Track: 100, Visible: true},
		},
	}))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Sides)
	assert.Equal(t, []entity.LayoutEntry{{Panel: "c", Edge: entity.EdgeTools, Track: 100, Visible: true}}, got.Entries)
	assert.False(t, got.SavedAt.IsZero())
}

func TestLayoutRepository_List(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewLayoutRepository(openTestDB(t))

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	saves := []struct {
		id     string
		offset time.Duration
	}{
		{"old", 0},
		{"new", 2 * time.Hour},
		{"mid", time.Hour},
	}
	for _, s := range saves {
		require.NoError(t, repo.Save(ctx, &entity.DockLayout{
			SessionID: s.id,
			SavedAt:   base.Add(s.offset),
			Entries:   []entity.LayoutEntry{{Panel: s.id, Edge: entity.EdgeLeft, Track: 100, Visible: true}},
		}))
	}

	layouts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, layouts, 3)
	assert.Equal(t, "new", layouts[0].SessionID)
	assert.Equal(t, "mid", layouts[1].SessionID)
	assert.Equal(t, "old", layouts[2].SessionID)
	assert.Equal(t, "mid", layouts[1].Entries[0].Panel)
}

func TestLayoutRepository_SaveValidates(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewLayoutRepository(openTestDB(t))

	assert.Error(t, repo.Save(ctx, nil))
	assert.Error(t, repo.Save(ctx, &entity.DockLayout{}))
}

func TestNewConnection_EmptyPath(t *testing.T) {
	_, err := sqlite.NewConnection(testCtx(), "")
	assert.Error(t, err)
}
