// Package entity defines the domain entities of the docking layout:
// edges, sides, panels and the content they host.
// These entities are pure Go types with no infrastructure dependencies.
package entity

// Axis is the direction along which a track stacks its children.
type Axis int

const (
	AxisVertical   Axis = iota // Children stacked top to bottom
	AxisHorizontal             // Children stacked left to right
)

// Perpendicular returns the other axis.
func (a Axis) Perpendicular() Axis {
	if a == AxisVertical {
		return AxisHorizontal
	}
	return AxisVertical
}

func (a Axis) String() string {
	if a == AxisVertical {
		return "vertical"
	}
	return "horizontal"
}

// Point is a screen coordinate.
type Point struct {
	X, Y int
}

// Along returns the coordinate of p projected onto the axis.
func (p Point) Along(axis Axis) int {
	if axis == AxisVertical {
		return p.Y
	}
	return p.X
}

// Rect represents an axis-aligned screen rectangle.
type Rect struct {
	X, Y int // Top-left position relative to the shell frame
	W, H int // Width and height
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (cx, cy int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// CenterAlong returns the center of the rectangle projected onto the axis.
func (r Rect) CenterAlong(axis Axis) int {
	cx, cy := r.Center()
	if axis == AxisVertical {
		return cy
	}
	return cx
}

// Contains reports whether the point lies inside the rectangle.
// The right and bottom edges are exclusive.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Extent returns the size of the rectangle along the axis.
func (r Rect) Extent(axis Axis) int {
	if axis == AxisVertical {
		return r.H
	}
	return r.W
}

// Offset returns the leading coordinate of the rectangle along the axis.
func (r Rect) Offset(axis Axis) int {
	if axis == AxisVertical {
		return r.Y
	}
	return r.X
}

// Span returns a copy of r whose position and size along the axis are
// replaced by offset and extent. The cross axis is unchanged.
func (r Rect) Span(axis Axis, offset, extent int) Rect {
	if axis == AxisVertical {
		r.Y, r.H = offset, extent
	} else {
		r.X, r.W = offset, extent
	}
	return r
}

// Inflate grows the rectangle by d on both sides along the axis.
func (r Rect) Inflate(axis Axis, d int) Rect {
	return r.Span(axis, r.Offset(axis)-d, r.Extent(axis)+2*d)
}
