package entity

// Spacer is the draggable divider between two adjacent shown members of a side.
// Spacers are rebuilt on every side layout and never persisted.
type Spacer struct {
	Index  int  // Position in the side's spacer list
	Axis   Axis // Stacking axis of the owning side
	Before int  // Member index of the leading neighbour
	After  int  // Member index of the trailing neighbour
	Rect   Rect // Hit region, the gap widened by the side's slop
}

// Hover reports whether the pointer is over the divider.
func (s Spacer) Hover(x, y int) bool {
	return s.Rect.Contains(x, y)
}

// SpacerDrag is an in-progress spacer drag. It is a plain value: the side
// resolves its neighbours by index each time the drag is applied.
type SpacerDrag struct {
	Edge   Edge
	Index  int
	Axis   Axis
	Anchor int   // Pointer position along the axis at mouse-down
	Last   Point // Last pointer position seen

	before, after int
	startBefore   int // Pixel extent of the leading neighbour at mouse-down
	startAfter    int // Pixel extent of the trailing neighbour at mouse-down
	origin        int // Leading offset of the leading neighbour
	end           int // Trailing offset of the trailing neighbour
}

// Delta returns how far the pointer moved along the axis since mouse-down.
func (d SpacerDrag) Delta() int {
	return d.Last.Along(d.Axis) - d.Anchor
}

// BorderDrag is an in-progress resize of a whole side by the border it
// shares with the document area.
type BorderDrag struct {
	Edge   Edge
	Axis   Axis  // Axis the side's thickness is measured on
	Anchor int   // Pointer position along the axis at mouse-down
	Last   Point // Last pointer position seen

	start int // Side thickness at mouse-down
	limit int // Thickest the side may grow
}

// Delta returns how far the pointer moved along the axis since mouse-down.
func (d BorderDrag) Delta() int {
	return d.Last.Along(d.Axis) - d.Anchor
}
