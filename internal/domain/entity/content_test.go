package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContent struct {
	name     string
	visible  bool
	raised   int
	focused  int
	closed   bool
	closeErr error
}

func (f *fakeContent) SetVisible(v bool) { f.visible = v }
func (f *fakeContent) Visible() bool     { return f.visible }
func (f *fakeContent) Raise()            { f.raised++ }
func (f *fakeContent) Focus()            { f.focused++ }
func (f *fakeContent) Close() error {
	f.closed = true
	return f.closeErr
}

func TestSoloContent_CapacityIsOne(t *testing.T) {
	var solo SoloContent
	first := &fakeContent{name: "first"}
	second := &fakeContent{name: "second"}

	require.NoError(t, solo.Set(first))
	err := solo.Set(second)

	assert.ErrorIs(t, err, ErrSoloOccupied)
	assert.Same(t, first, solo.Content())
	assert.False(t, second.closed)
}

func TestSoloContent_SetNil(t *testing.T) {
	var solo SoloContent
	assert.ErrorIs(t, solo.Set(nil), ErrNilContent)
	assert.False(t, solo.Occupied())
}

func TestSoloContent_Shuffle(t *testing.T) {
	var solo SoloContent
	assert.False(t, solo.Shuffle(true), "empty solo shows nothing")

	c := &fakeContent{}
	require.NoError(t, solo.Set(c))

	assert.True(t, solo.Shuffle(true))
	assert.True(t, c.visible)
	assert.Equal(t, 1, c.raised)

	assert.False(t, solo.Shuffle(false))
	assert.False(t, c.visible)
}

func TestSoloContent_Dispose(t *testing.T) {
	var solo SoloContent
	c := &fakeContent{}
	require.NoError(t, solo.Set(c))

	require.NoError(t, solo.Dispose())
	assert.True(t, c.closed)
	assert.False(t, solo.Occupied())
	assert.NoError(t, solo.Dispose())
}

func TestCollectionContent_ShuffleExclusive(t *testing.T) {
	var clxn CollectionContent
	docs := map[ContextKey]*fakeContent{
		"doc1": {name: "doc1"},
		"doc2": {name: "doc2"},
		"doc3": {name: "doc3"},
	}
	for _, key := range []ContextKey{"doc1", "doc2", "doc3"} {
		require.NoError(t, clxn.Add(key, docs[key]))
	}

	for _, key := range []ContextKey{"doc2", "doc1", "doc3"} {
		t.Run(string(key), func(t *testing.T) {
			assert.True(t, clxn.Shuffle(key, true))
			visible := 0
			for k, c := range docs {
				if c.visible {
					visible++
					assert.Equal(t, key, k)
				}
			}
			assert.Equal(t, 1, visible)
		})
	}

	assert.False(t, clxn.Shuffle("doc1", false))
	for _, c := range docs {
		assert.False(t, c.visible)
	}
}

func TestCollectionContent_ShuffleUnknownKeyHidesAll(t *testing.T) {
	var clxn CollectionContent
	c := &fakeContent{visible: true}
	require.NoError(t, clxn.Add("doc1", c))

	assert.False(t, clxn.Shuffle("other", true))
	assert.False(t, c.visible)
}

func TestCollectionContent_DuplicateKeysResolveToFirst(t *testing.T) {
	var clxn CollectionContent
	a, b := &fakeContent{name: "a"}, &fakeContent{name: "b"}
	require.NoError(t, clxn.Add("doc", a))
	require.NoError(t, clxn.Add("doc", b))

	assert.Equal(t, 2, clxn.Len())
	assert.Same(t, a, clxn.Find("doc"))

	clxn.Shuffle("doc", true)
	assert.True(t, a.visible)
	assert.False(t, b.visible)
}

func TestCollectionContent_RemoveDoesNotClose(t *testing.T) {
	var clxn CollectionContent
	c := &fakeContent{}
	require.NoError(t, clxn.Add("doc1", c))

	got := clxn.Remove("doc1")
	assert.Same(t, c, got)
	assert.False(t, c.closed)
	assert.Nil(t, clxn.Remove("doc1"))
	assert.Zero(t, clxn.Len())
}

func TestCollectionContent_ClearClosesAndJoinsErrors(t *testing.T) {
	var clxn CollectionContent
	boom := errors.New("boom")
	a := &fakeContent{}
	b := &fakeContent{closeErr: boom}
	require.NoError(t, clxn.Add("a", a))
	require.NoError(t, clxn.Add("b", b))

	err := clxn.Clear()
	assert.ErrorIs(t, err, boom)
	assert.True(t, a.closed)
	assert.True(t, b.closed)
	assert.Empty(t, clxn.Keys())
}
