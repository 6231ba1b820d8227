package entity

import (
	"fmt"
	"math"
)

// Percentage band a side's percent tracks must settle in.
const (
	PercentSumMin = 90
	PercentSumMax = 110
)

// SideSettings holds the configurable geometry of a side.
type SideSettings struct {
	Track     int // Thickness across the stacking axis, in pixels
	FirstOpen int // Thickness restored when a collapsed side opens
	Spacing   int // Gap between adjacent members
	Slop      int // Extra hit margin around each spacer
}

// Side is the ordered stack of panels docked on one edge.
type Side struct {
	Edge      Edge
	Track     int
	FirstOpen int
	Spacing   int
	Slop      int

	hidden  bool
	rect    Rect
	panels  []*Panel
	spacers []Spacer
}

// NewSide creates an empty, hidden side.
func NewSide(edge Edge, settings SideSettings) *Side {
	s := &Side{
		Edge:      edge,
		Track:     settings.Track,
		FirstOpen: settings.FirstOpen,
		Spacing:   settings.Spacing,
		Slop:      settings.Slop,
		hidden:    true,
	}
	if s.FirstOpen <= 0 {
		s.FirstOpen = edge.DefaultTrack()
	}
	return s
}

// Axis returns the direction members are stacked in.
func (s *Side) Axis() Axis { return s.Edge.Axis() }

// Hidden reports whether the side is collapsed.
func (s *Side) Hidden() bool { return s.hidden }

// Rect returns the rectangle assigned by the frame layout.
func (s *Side) Rect() Rect { return s.rect }

// SetRect records the rectangle assigned by the frame layout.
func (s *Side) SetRect(r Rect) { s.rect = r }

// Members returns the panels in visual order.
func (s *Side) Members() []*Panel {
	out := make([]*Panel, len(s.panels))
	copy(out, s.panels)
	return out
}

// Len returns the number of members.
func (s *Side) Len() int { return len(s.panels) }

// IndexOf returns the position of p, or -1.
func (s *Side) IndexOf(p *Panel) int {
	for i, m := range s.panels {
		if m == p {
			return i
		}
	}
	return -1
}

// Add appends a panel. From the second member on, a spacer joins it to the
// previous last member.
func (s *Side) Add(p *Panel) {
	s.panels = append(s.panels, p)
	if n := len(s.panels); n > 1 {
		s.spacers = append(s.spacers, Spacer{
			Index:  len(s.spacers),
			Axis:   s.Axis(),
			Before: n - 2,
			After:  n - 1,
		})
	}
}

// Clear removes all members and spacers.
func (s *Side) Clear() {
	s.panels = nil
	s.spacers = nil
}

// Load replaces the membership with panels, in order, and returns the sum of
// their percentage tracks.
func (s *Side) Load(panels []*Panel) int {
	s.Clear()
	for _, p := range panels {
		s.Add(p)
	}
	return s.PercentSum()
}

// PercentSum returns the sum of the tracks of percentage-styled members.
func (s *Side) PercentSum() int {
	sum := 0
	for _, p := range s.panels {
		if p.Style == TrackPercent {
			sum += p.Track
		}
	}
	return sum
}

// PercentSettled reports whether the percentage tracks are inside the accepted band.
func (s *Side) PercentSettled() bool {
	sum := s.PercentSum()
	return sum >= PercentSumMin && sum <= PercentSumMax
}

// ResetPercent recomputes percentage tracks. With normalize set every
// percentage member gets an even share of 100; otherwise the shown members
// split what the hidden ones leave of 100 in proportion to their pixel extents.
func (s *Side) ResetPercent(normalize bool) {
	var members []*Panel
	budget := 100
	for _, p := range s.panels {
		if p.Style != TrackPercent {
			continue
		}
		if !normalize && p.Hidden() {
			budget -= p.Track
			continue
		}
		members = append(members, p)
	}
	if budget <= 0 {
		budget = 100
	}
	if len(members) == 0 {
		return
	}

	if normalize {
		share := 100 / len(members)
		for _, p := range members {
			p.Track = share
		}
		members[len(members)-1].Track += 100 - share*len(members)
		return
	}

	axis := s.Axis()
	total := 0
	for _, p := range members {
		total += p.Rect().Extent(axis)
	}
	if total <= 0 {
		return
	}
	for _, p := range members {
		p.Track = int(math.Round(float64(budget) * float64(p.Rect().Extent(axis)) / float64(total)))
	}
}

// Spacers returns the spacers of the last layout.
func (s *Side) Spacers() []Spacer {
	out := make([]Spacer, len(s.spacers))
	copy(out, s.spacers)
	return out
}

// HitTestSpacers returns the first spacer whose region holds the point.
func (s *Side) HitTestSpacers(x, y int) (Spacer, bool) {
	for _, sp := range s.spacers {
		if sp.Hover(x, y) {
			return sp, true
		}
	}
	return Spacer{}, false
}

// LayoutChildren assigns each member a slice of the side's rectangle.
// Hidden members get an empty rectangle. It returns ErrDegenerateLayout and
// leaves every rectangle untouched when the side has no extent.
func (s *Side) LayoutChildren() error {
	axis := s.Axis()
	extent := s.rect.Extent(axis)
	if extent <= 0 || s.rect.Extent(axis.Perpendicular()) <= 0 {
		return fmt.Errorf("%w: %s side is %dx%d", ErrDegenerateLayout, s.Edge, s.rect.W, s.rect.H)
	}

	var shown []int
	for i, p := range s.panels {
		if p.Hidden() {
			p.SetRect(Rect{})
			continue
		}
		shown = append(shown, i)
	}
	s.spacers = s.spacers[:0]
	if len(shown) == 0 {
		return nil
	}

	sizes := s.sizes(shown, extent)
	offset := s.rect.Offset(axis)
	for n, i := range shown {
		if n > 0 {
			gap := s.rect.Span(axis, offset, s.Spacing)
			s.spacers = append(s.spacers, Spacer{
				Index:  len(s.spacers),
				Axis:   axis,
				Before: shown[n-1],
				After:  i,
				Rect:   gap.Inflate(axis, s.Slop),
			})
			offset += s.Spacing
		}
		s.panels[i].SetRect(s.rect.Span(axis, offset, sizes[n]))
		offset += sizes[n]
	}
	return nil
}

// sizes splits extent among the shown members. Pixel tracks are taken first,
// percentage members share the rest and the last of them absorbs rounding.
func (s *Side) sizes(shown []int, extent int) []int {
	avail := extent - s.Spacing*(len(shown)-1)
	pctSum, pctCount, lastPct := 0, 0, -1
	for n, i := range shown {
		p := s.panels[i]
		if p.Style == TrackPixels {
			avail -= max(p.Track, 0)
			continue
		}
		pctSum += max(p.Track, 0)
		pctCount++
		lastPct = n
	}
	avail = max(avail, 0)

	sizes := make([]int, len(shown))
	used := 0
	for n, i := range shown {
		p := s.panels[i]
		switch {
		case p.Style == TrackPixels:
			sizes[n] = max(p.Track, 0)
		case n == lastPct:
		case pctSum > 0:
			sizes[n] = avail * max(p.Track, 0) / pctSum
			used += sizes[n]
		default:
			sizes[n] = avail / pctCount
			used += sizes[n]
		}
	}
	if lastPct >= 0 {
		sizes[lastPct] = max(avail-used, 0)
	}
	return sizes
}

// Collapse hides the side and folds its thickness to zero. A usable
// thickness is kept as the size to reopen with.
func (s *Side) Collapse(minMargin int) {
	if s.Track >= minMargin && s.Track > 0 {
		s.FirstOpen = s.Track
	}
	s.Track = 0
	s.hidden = true
}

// Expand unhides the side, restoring the first-open thickness when the
// current one is thinner than minMargin.
func (s *Side) Expand(minMargin int) {
	s.hidden = false
	if s.Track < minMargin {
		s.Track = s.FirstOpen
	}
}

// BeginSpacerDrag starts dragging the spacer under the point.
func (s *Side) BeginSpacerDrag(x, y int) (SpacerDrag, bool) {
	sp, ok := s.HitTestSpacers(x, y)
	if !ok {
		return SpacerDrag{}, false
	}
	axis := s.Axis()
	before := s.panels[sp.Before].Rect()
	after := s.panels[sp.After].Rect()
	pt := Point{X: x, Y: y}
	return SpacerDrag{
		Edge:        s.Edge,
		Index:       sp.Index,
		Axis:        axis,
		Anchor:      pt.Along(axis),
		Last:        pt,
		before:      sp.Before,
		after:       sp.After,
		startBefore: before.Extent(axis),
		startAfter:  after.Extent(axis),
		origin:      before.Offset(axis),
		end:         after.Offset(axis) + after.Extent(axis),
	}, true
}

// ApplySpacerDrag moves the dragged spacer to the point. Every pixel one
// neighbour gains is lost by the other. It returns the updated drag.
func (s *Side) ApplySpacerDrag(d SpacerDrag, x, y int) SpacerDrag {
	d.Last = Point{X: x, Y: y}
	if d.before >= len(s.panels) || d.after >= len(s.panels) {
		return d
	}
	total := d.startBefore + d.startAfter
	nb := min(max(d.startBefore+d.Delta(), 0), total)
	na := total - nb

	before, after := s.panels[d.before], s.panels[d.after]
	before.SetRect(before.Rect().Span(d.Axis, d.origin, nb))
	after.SetRect(after.Rect().Span(d.Axis, d.end-na, na))
	if before.Style == TrackPixels {
		before.Track = nb
	}
	if after.Style == TrackPixels {
		after.Track = na
	}
	if d.Index < len(s.spacers) {
		gap := s.rect.Span(d.Axis, d.origin+nb, d.end-na-d.origin-nb)
		s.spacers[d.Index].Rect = gap.Inflate(d.Axis, s.Slop)
	}
	return d
}

// EndSpacerDrag settles a drag: percentages follow the new pixel split and
// the side is laid out again.
func (s *Side) EndSpacerDrag(d SpacerDrag) {
	s.ApplySpacerDrag(d, d.Last.X, d.Last.Y)
	s.ResetPercent(false)
	_ = s.LayoutChildren()
}

// BorderGrip returns the hit strip on the border the side shares with the
// document area. It reaches Spacing or Slop pixels either way, whichever is
// wider. Only shown left, right and bottom sides have one.
func (s *Side) BorderGrip() (Rect, bool) {
	growth := s.Edge.borderGrowth()
	if growth == 0 || s.hidden || s.rect.Empty() {
		return Rect{}, false
	}
	cross := s.Axis().Perpendicular()
	border := s.rect.Offset(cross)
	if growth > 0 {
		border += s.rect.Extent(cross)
	}
	reach := max(s.Spacing, s.Slop, 1)
	return s.rect.Span(cross, border-reach, 2*reach), true
}

// BeginBorderDrag starts resizing the side when the point is on its border
// grip. The side never grows past limit pixels.
func (s *Side) BeginBorderDrag(x, y, limit int) (BorderDrag, bool) {
	grip, ok := s.BorderGrip()
	if !ok || !grip.Contains(x, y) {
		return BorderDrag{}, false
	}
	cross := s.Axis().Perpendicular()
	pt := Point{X: x, Y: y}
	start := s.rect.Extent(cross)
	return BorderDrag{
		Edge:   s.Edge,
		Axis:   cross,
		Anchor: pt.Along(cross),
		Last:   pt,
		start:  start,
		limit:  max(limit, start),
	}, true
}

// ApplyBorderDrag sets the side thickness from the pointer, clamped between
// zero and the drag limit. It returns the updated drag.
func (s *Side) ApplyBorderDrag(d BorderDrag, x, y int) BorderDrag {
	d.Last = Point{X: x, Y: y}
	if d.Edge != s.Edge {
		return d
	}
	s.Track = min(max(d.start+s.Edge.borderGrowth()*d.Delta(), 0), d.limit)
	return d
}
