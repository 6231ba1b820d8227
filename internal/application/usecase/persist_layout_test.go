package usecase_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/phreebee/dockyard/internal/application/usecase"
	"github.com/phreebee/dockyard/internal/domain/entity"
	repomocks "github.com/phreebee/dockyard/internal/domain/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// jsonCodec stands in for the session file codec.
type jsonCodec struct {
	warnings []error
}

func (c jsonCodec) Encode(w io.Writer, layout *entity.DockLayout) error {
	return json.NewEncoder(w).Encode(layout)
}

func (c jsonCodec) Decode(r io.Reader) (*entity.DockLayout, []error, error) {
	var layout entity.DockLayout
	if err := json.NewDecoder(r).Decode(&layout); err != nil {
		return nil, nil, err
	}
	return &layout, c.warnings, nil
}

func TestPersistLayoutUseCase_Snapshot(t *testing.T) {
	ctx := testContext()
	m, shell, _ := newTestManager(t)
	focus(t, ctx, m, shell, "doc1")

	repo := repomocks.NewMockLayoutRepository(t)
	repo.EXPECT().
		Save(mock.Anything, mock.AnythingOfType("*entity.DockLayout")).
		RunAndReturn(func(_ context.Context, layout *entity.DockLayout) error {
			assert.Equal(t, "20260101_120000_abcd", layout.SessionID)
			assert.False(t, layout.SavedAt.IsZero())
			assert.Len(t, layout.Entries, 4)
			return nil
		})

	uc := usecase.NewPersistLayoutUseCase(repo, jsonCodec{}, nil)
	layout, err := uc.Snapshot(ctx, m, "20260101_120000_abcd")

	require.NoError(t, err)
	assert.Equal(t, "20260101_120000_abcd", layout.SessionID)
}

func TestPersistLayoutUseCase_SnapshotErrors(t *testing.T) {
	ctx := testContext()
	m, _, _ := newTestManager(t)
	repo := repomocks.NewMockLayoutRepository(t)
	uc := usecase.NewPersistLayoutUseCase(repo, jsonCodec{}, nil)

	_, err := uc.Snapshot(ctx, m, "")
	assert.Error(t, err)

	boom := errors.New("disk full")
	repo.EXPECT().Save(mock.Anything, mock.Anything).Return(boom)
	_, err = uc.Snapshot(ctx, m, "s1")
	assert.ErrorIs(t, err, boom)
}

func TestPersistLayoutUseCase_Restore(t *testing.T) {
	ctx := testContext()
	m, _, _ := newTestManager(t)

	repo := repomocks.NewMockLayoutRepository(t)
	repo.EXPECT().Get(mock.Anything, "s1").Return(&entity.DockLayout{
		SessionID: "s1",
		Entries: []entity.LayoutEntry{
			{Panel: outlineID.String(), Edge: entity.EdgeLeft, Order: 1, Track: 30, Visible: true},
			{Panel: propsID.String(), Edge: entity.EdgeLeft, Order: 0, Track: 70, Visible: true},
		},
	}, nil)
	repo.EXPECT().Get(mock.Anything, "missing").Return(nil, nil)

	uc := usecase.NewPersistLayoutUseCase(repo, jsonCodec{}, nil)

	found, err := uc.Restore(ctx, m, "s1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"Properties", "Outline"}, memberNames(t, m, entity.EdgeLeft))

	found, err = uc.Restore(ctx, m, "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPersistLayoutUseCase_ExportMissing(t *testing.T) {
	repo := repomocks.NewMockLayoutRepository(t)
	repo.EXPECT().Get(mock.Anything, "gone").Return(nil, nil)
	uc := usecase.NewPersistLayoutUseCase(repo, jsonCodec{}, nil)

	err := uc.Export(testContext(), "gone", io.Discard)

	assert.ErrorIs(t, err, usecase.ErrLayoutNotFound)
}

func TestPersistLayoutUseCase_ExportImportLive(t *testing.T) {
	ctx := testContext()
	src, shell, _ := newTestManager(t)
	focus(t, ctx, src, shell, "doc1")
	require.NoError(t, src.SetState(ctx, syntaxID, false))

	sink := &recordingSink{}
	codec := jsonCodec{warnings: []error{errors.New("record 3: bad track")}}
	uc := usecase.NewPersistLayoutUseCase(repomocks.NewMockLayoutRepository(t), codec, sink)

	var buf bytes.Buffer
	require.NoError(t, uc.ExportLive(ctx, src, &buf))

	dst, _, _ := newTestManager(t)
	applied, err := uc.ImportLive(ctx, dst, &buf)

	require.NoError(t, err)
	assert.Equal(t, 4, applied)
	assert.False(t, mustPanel(t, dst, syntaxID).Checked)
	assert.Equal(t, []string{"layout: record 3: bad track"}, sink.entries)
}

func TestPersistLayoutUseCase_Import(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockLayoutRepository(t)
	repo.EXPECT().
		Save(mock.Anything, mock.AnythingOfType("*entity.DockLayout")).
		Return(nil)
	uc := usecase.NewPersistLayoutUseCase(repo, jsonCodec{}, nil)

	layout, err := uc.Import(ctx, "s2", bytes.NewBufferString(`{"entries":[{"panel":"Outline","edge":0,"order":0,"track":100,"visible":true}]}`))

	require.NoError(t, err)
	assert.Equal(t, "s2", layout.SessionID)
	require.Len(t, layout.Entries, 1)
	assert.Equal(t, "Outline", layout.Entries[0].Panel)

	_, err = uc.Import(ctx, "s2", bytes.NewBufferString("not json"))
	assert.Error(t, err)
}
