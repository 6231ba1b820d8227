package entity

import "time"

const (
	// TrackUnset marks a layout entry without a usable track. Its side is
	// spread evenly on load.
	TrackUnset = -1
	// TrackKeep leaves the panel's current track untouched.
	TrackKeep = -2
)

// EdgeKeep marks a layout entry that leaves the panel on its current edge.
// Layouts written by older shells only list panel names.
const EdgeKeep Edge = -1

// LayoutEntry is one persisted panel placement.
type LayoutEntry struct {
	// Panel holds the decor id, or a panel name for layouts written by older shells.
	Panel   string `json:"panel"`
	Edge    Edge   `json:"edge"`
	Order   int    `json:"order"`
	Track   int    `json:"track"`
	Visible bool   `json:"visible"`
}

// DockLayout is a complete persisted docking arrangement.
type DockLayout struct {
	SessionID string        `json:"session_id"`
	Sides     map[Edge]int  `json:"sides"` // Side thickness by edge
	Entries   []LayoutEntry `json:"entries"`
	SavedAt   time.Time     `json:"saved_at"`
}

// EntriesFor returns the entries of one edge in file order.
func (l *DockLayout) EntriesFor(edge Edge) []LayoutEntry {
	var out []LayoutEntry
	for _, e := range l.Entries {
		if e.Edge == edge {
			out = append(out, e)
		}
	}
	return out
}

// SideTrack returns the persisted thickness of a side, falling back to the
// edge default when it is missing or unusable.
func (l *DockLayout) SideTrack(edge Edge) int {
	if l == nil || l.Sides == nil {
		return edge.DefaultTrack()
	}
	if v, ok := l.Sides[edge]; ok && v >= 0 {
		return v
	}
	return edge.DefaultTrack()
}
