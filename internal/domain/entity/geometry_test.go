package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"top-left corner", 10, 20, true},
		{"inside", 25, 45, true},
		{"right edge exclusive", 40, 30, false},
		{"bottom edge exclusive", 15, 60, false},
		{"left of", 9, 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.x, tt.y))
		})
	}
}

func TestRect_AxisHelpers(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}

	assert.Equal(t, 40, r.Extent(AxisVertical))
	assert.Equal(t, 30, r.Extent(AxisHorizontal))
	assert.Equal(t, 20, r.Offset(AxisVertical))
	assert.Equal(t, Rect{X: 10, Y: 5, W: 30, H: 7}, r.Span(AxisVertical, 5, 7))
	assert.Equal(t, Rect{X: 8, Y: 20, W: 34, H: 40}, r.Inflate(AxisHorizontal, 2))
	assert.Equal(t, 40, r.CenterAlong(AxisVertical))
	assert.Equal(t, 25, r.CenterAlong(AxisHorizontal))
	assert.True(t, Rect{W: 0, H: 5}.Empty())
}

func TestParseEdge(t *testing.T) {
	for _, edge := range Edges() {
		got, err := ParseEdge(" " + edge.String() + " ")
		assert.NoError(t, err)
		assert.Equal(t, edge, got)
	}

	got, err := ParseEdge("BOTTOM")
	assert.NoError(t, err)
	assert.Equal(t, EdgeBottom, got)

	_, err = ParseEdge("top")
	assert.ErrorIs(t, err, ErrUnknownEdge)
}

func TestEdge_Defaults(t *testing.T) {
	assert.Equal(t, 250, EdgeLeft.DefaultTrack())
	assert.Equal(t, 250, EdgeRight.DefaultTrack())
	assert.Equal(t, 100, EdgeBottom.DefaultTrack())
	assert.Equal(t, 65, EdgeTools.DefaultTrack())
	assert.Equal(t, 30, EdgeOptions.DefaultTrack())
	assert.Equal(t, AxisHorizontal, EdgeOptions.Axis())
	assert.Equal(t, AxisVertical, EdgeTools.Axis())
}
