package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shownPanel(name string, track int) *Panel {
	p := NewPanel(PanelSpec{Name: name, Track: track, Visible: true})
	p.Show(ShowInactive)
	return p
}

func newLeft(spacing int) *Side {
	s := NewSide(EdgeLeft, SideSettings{Track: 250, Spacing: spacing, Slop: 2})
	s.SetRect(Rect{X: 0, Y: 0, W: 250, H: 500})
	return s
}

func TestSide_AddSynthesizesSpacers(t *testing.T) {
	s := newLeft(0)
	s.Add(shownPanel("p1", 50))
	assert.Empty(t, s.Spacers())

	s.Add(shownPanel("p2", 50))
	s.Add(shownPanel("p3", 50))

	spacers := s.Spacers()
	require.Len(t, spacers, 2)
	assert.Equal(t, 0, spacers[0].Before)
	assert.Equal(t, 1, spacers[0].After)
	assert.Equal(t, 1, spacers[1].Before)
	assert.Equal(t, 2, spacers[1].After)
}

func TestSide_LayoutChildren(t *testing.T) {
	s := newLeft(5)
	p1, p2 := shownPanel("p1", 40), shownPanel("p2", 60)
	s.Load([]*Panel{p1, p2})

	require.NoError(t, s.LayoutChildren())

	// 495 pixels to share after one gap
	assert.Equal(t, Rect{X: 0, Y: 0, W: 250, H: 198}, p1.Rect())
	assert.Equal(t, Rect{X: 0, Y: 203, W: 250, H: 297}, p2.Rect())

	spacers := s.Spacers()
	require.Len(t, spacers, 1)
	assert.Equal(t, Rect{X: 0, Y: 196, W: 250, H: 9}, spacers[0].Rect)
}

func TestSide_LayoutChildren_PixelsAndHidden(t *testing.T) {
	s := newLeft(0)
	fixed := shownPanel("fixed", 100)
	fixed.Style = TrackPixels
	gone := shownPanel("gone", 50)
	gone.Hide()
	gone.SetRect(Rect{X: 1, Y: 1, W: 1, H: 1})
	rest := shownPanel("rest", 50)
	s.Load([]*Panel{fixed, gone, rest})

	require.NoError(t, s.LayoutChildren())

	assert.Equal(t, 100, fixed.Rect().H)
	assert.Equal(t, Rect{}, gone.Rect())
	assert.Equal(t, Rect{X: 0, Y: 100, W: 250, H: 400}, rest.Rect())
	require.Len(t, s.Spacers(), 1)
	assert.Equal(t, 0, s.Spacers()[0].Before)
	assert.Equal(t, 2, s.Spacers()[0].After)
}

func TestSide_LayoutChildren_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
	}{
		{name: "zero extent", rect: Rect{W: 250, H: 0}},
		{name: "zero thickness", rect: Rect{W: 0, H: 500}},
		{name: "negative", rect: Rect{W: -4, H: -4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newLeft(5)
			p := shownPanel("p", 100)
			p.SetRect(Rect{X: 3, Y: 3, W: 30, H: 30})
			s.Load([]*Panel{p})
			s.SetRect(tt.rect)

			assert.ErrorIs(t, s.LayoutChildren(), ErrDegenerateLayout)
			assert.Equal(t, Rect{X: 3, Y: 3, W: 30, H: 30}, p.Rect())
		})
	}
}

func TestSide_ResetPercent(t *testing.T) {
	t.Run("normalize gives even shares summing to 100", func(t *testing.T) {
		s := newLeft(0)
		a, b, c := shownPanel("a", 10), shownPanel("b", 10), shownPanel("c", 10)
		s.Load([]*Panel{a, b, c})

		s.ResetPercent(true)

		assert.Equal(t, 33, a.Track)
		assert.Equal(t, 33, b.Track)
		assert.Equal(t, 34, c.Track)
		assert.Equal(t, 100, s.PercentSum())
	})

	t.Run("proportional to pixel extents", func(t *testing.T) {
		s := newLeft(0)
		a, b := shownPanel("a", 1), shownPanel("b", 1)
		s.Load([]*Panel{a, b})
		a.SetRect(Rect{W: 250, H: 125})
		b.SetRect(Rect{W: 250, H: 375})

		s.ResetPercent(false)

		assert.Equal(t, 25, a.Track)
		assert.Equal(t, 75, b.Track)
	})

	t.Run("no-op without extent", func(t *testing.T) {
		s := newLeft(0)
		a := shownPanel("a", 7)
		s.Load([]*Panel{a})

		s.ResetPercent(false)
		assert.Equal(t, 7, a.Track)
	})

	t.Run("no-op without percentage members", func(t *testing.T) {
		s := newLeft(0)
		a := shownPanel("a", 120)
		a.Style = TrackPixels
		s.Load([]*Panel{a})

		s.ResetPercent(true)
		assert.Equal(t, 120, a.Track)
	})
}

func TestSide_LoadReturnsPercentSum(t *testing.T) {
	s := newLeft(0)
	a, b := shownPanel("a", 10), shownPanel("b", 10)

	sum := s.Load([]*Panel{a, b})

	assert.Equal(t, 20, sum)
	assert.False(t, s.PercentSettled())
	s.ResetPercent(true)
	assert.Equal(t, 50, a.Track)
	assert.Equal(t, 50, b.Track)
	assert.True(t, s.PercentSettled())
}

func TestSide_SpacerDragReallocatesAndReproportions(t *testing.T) {
	s := newLeft(0)
	p1, p2 := shownPanel("p1", 40), shownPanel("p2", 60)
	s.Load([]*Panel{p1, p2})
	require.NoError(t, s.LayoutChildren())
	require.Equal(t, 200, p1.Rect().H)
	require.Equal(t, 300, p2.Rect().H)

	drag, ok := s.BeginSpacerDrag(100, 200)
	require.True(t, ok)
	assert.Equal(t, AxisVertical, drag.Axis)

	drag = s.ApplySpacerDrag(drag, 100, 260)
	assert.Equal(t, 260, p1.Rect().H)
	assert.Equal(t, 240, p2.Rect().H)

	drag = s.ApplySpacerDrag(drag, 100, 300)
	assert.Equal(t, 300, p1.Rect().H)
	assert.Equal(t, 200, p2.Rect().H)
	assert.Equal(t, 500, p1.Rect().H+p2.Rect().H)

	s.EndSpacerDrag(drag)

	assert.Equal(t, 60, p1.Track)
	assert.Equal(t, 40, p2.Track)
	assert.Equal(t, 300, p1.Rect().H)
	assert.Equal(t, 200, p2.Rect().H)
}

func TestSide_SpacerDragClampsToNeighbours(t *testing.T) {
	s := newLeft(0)
	p1, p2 := shownPanel("p1", 50), shownPanel("p2", 50)
	s.Load([]*Panel{p1, p2})
	require.NoError(t, s.LayoutChildren())

	drag, ok := s.BeginSpacerDrag(10, 250)
	require.True(t, ok)

	drag = s.ApplySpacerDrag(drag, 10, 9000)
	assert.Equal(t, 500, p1.Rect().H)
	assert.Equal(t, 0, p2.Rect().H)

	drag = s.ApplySpacerDrag(drag, 10, -9000)
	assert.Equal(t, 0, p1.Rect().H)
	assert.Equal(t, 500, p2.Rect().H)
	assert.Equal(t, -9000, drag.Last.Y)
}

func TestSide_HitTestSpacers(t *testing.T) {
	s := newLeft(5)
	s.Load([]*Panel{shownPanel("a", 50), shownPanel("b", 50)})
	require.NoError(t, s.LayoutChildren())

	_, ok := s.HitTestSpacers(10, 100)
	assert.False(t, ok)

	sp, ok := s.HitTestSpacers(10, 249)
	require.True(t, ok)
	assert.Equal(t, 0, sp.Index)
}

func TestSide_CollapseAndExpand(t *testing.T) {
	s := NewSide(EdgeBottom, SideSettings{Track: 140})
	assert.True(t, s.Hidden())
	assert.Equal(t, 100, s.FirstOpen)

	s.Expand(8)
	assert.False(t, s.Hidden())
	assert.Equal(t, 140, s.Track)

	s.Collapse(8)
	assert.True(t, s.Hidden())
	assert.Zero(t, s.Track)

	s.Expand(8)
	assert.Equal(t, 140, s.Track, "reopens at the last usable thickness")
}

func TestSide_ResetPercent_KeepsHiddenShare(t *testing.T) {
	s := newLeft(0)
	a, b, c := shownPanel("a", 30), shownPanel("b", 30), shownPanel("c", 40)
	c.Hide()
	s.Load([]*Panel{a, b, c})
	a.SetRect(Rect{W: 250, H: 100})
	b.SetRect(Rect{W: 250, H: 300})

	s.ResetPercent(false)

	assert.Equal(t, 15, a.Track)
	assert.Equal(t, 45, b.Track)
	assert.Equal(t, 40, c.Track)
	assert.Equal(t, 100, s.PercentSum())
}

func TestSide_BorderGrip(t *testing.T) {
	tests := []struct {
		name string
		edge Edge
		rect Rect
		want Rect
		ok   bool
	}{
		{"left faces right", EdgeLeft, Rect{X: 0, Y: 0, W: 250, H: 600}, Rect{X: 248, Y: 0, W: 4, H: 600}, true},
		{"right faces left", EdgeRight, Rect{X: 750, Y: 0, W: 250, H: 600}, Rect{X: 748, Y: 0, W: 4, H: 600}, true},
		{"bottom faces up", EdgeBottom, Rect{X: 0, Y: 600, W: 1000, H: 100}, Rect{X: 0, Y: 598, W: 1000, H: 4}, true},
		{"tools has none", EdgeTools, Rect{X: 250, Y: 0, W: 65, H: 600}, Rect{}, false},
		{"empty rect", EdgeLeft, Rect{}, Rect{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSide(tt.edge, SideSettings{Track: 100, Slop: 2})
			s.Expand(8)
			s.SetRect(tt.rect)

			got, ok := s.BorderGrip()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	hidden := NewSide(EdgeLeft, SideSettings{Track: 250, Slop: 2})
	hidden.SetRect(Rect{W: 250, H: 600})
	_, ok := hidden.BorderGrip()
	assert.False(t, ok)
}

func TestSide_BorderDrag(t *testing.T) {
	t.Run("left grows with the pointer and clamps", func(t *testing.T) {
		s := newLeft(0)
		s.Expand(8)

		_, ok := s.BeginBorderDrag(100, 100, 750)
		require.False(t, ok)

		d, ok := s.BeginBorderDrag(249, 100, 750)
		require.True(t, ok)
		assert.Equal(t, AxisHorizontal, d.Axis)

		d = s.ApplyBorderDrag(d, 400, 120)
		assert.Equal(t, 151, d.Delta())
		assert.Equal(t, 401, s.Track)

		s.ApplyBorderDrag(d, 5000, 120)
		assert.Equal(t, 750, s.Track)

		s.ApplyBorderDrag(d, -5000, 120)
		assert.Equal(t, 0, s.Track)
	})

	t.Run("bottom grows as the pointer moves up", func(t *testing.T) {
		s := NewSide(EdgeBottom, SideSettings{Track: 100, Slop: 2})
		s.Expand(8)
		s.SetRect(Rect{X: 0, Y: 600, W: 1000, H: 100})

		d, ok := s.BeginBorderDrag(500, 601, 700)
		require.True(t, ok)
		assert.Equal(t, AxisVertical, d.Axis)

		s.ApplyBorderDrag(d, 500, 451)
		assert.Equal(t, 250, s.Track)
	})
}
