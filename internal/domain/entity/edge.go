package entity

import (
	"fmt"
	"strings"
)

// Edge identifies one of the fixed dock buckets around the document area.
type Edge int

const (
	EdgeLeft    Edge = iota // Column left of the documents
	EdgeRight               // Column right of the documents
	EdgeBottom              // Strip under everything
	EdgeTools               // Narrow column between left and the documents
	EdgeOptions             // Strip above the documents
)

var edgeNames = [...]string{"left", "right", "bottom", "tools", "options"}

// Initial side thickness in pixels, used when nothing better is configured.
var edgeDefaultTracks = [...]int{250, 250, 100, 65, 30}

// Edges returns all edges in declaration order.
func Edges() []Edge {
	return []Edge{EdgeLeft, EdgeRight, EdgeBottom, EdgeTools, EdgeOptions}
}

// Valid reports whether e is one of the declared edges.
func (e Edge) Valid() bool {
	return e >= EdgeLeft && e <= EdgeOptions
}

func (e Edge) String() string {
	if !e.Valid() {
		return fmt.Sprintf("edge(%d)", int(e))
	}
	return edgeNames[e]
}

// Axis returns the stacking direction of panels docked on this edge.
func (e Edge) Axis() Axis {
	switch e {
	case EdgeBottom, EdgeOptions:
		return AxisHorizontal
	default:
		return AxisVertical
	}
}

// DefaultTrack returns the built-in side thickness for the edge.
func (e Edge) DefaultTrack() int {
	if !e.Valid() {
		return 0
	}
	return edgeDefaultTracks[e]
}

// borderGrowth returns +1 when a side on this edge thickens as the pointer
// moves forward across it and -1 when it thins. Tools and options sides
// have no resizable border and return 0.
func (e Edge) borderGrowth() int {
	switch e {
	case EdgeLeft:
		return 1
	case EdgeRight, EdgeBottom:
		return -1
	default:
		return 0
	}
}

// ParseEdge resolves an edge from its name, ignoring case and surrounding space.
func ParseEdge(s string) (Edge, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range edgeNames {
		if n == name {
			return Edge(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEdge, s)
}
