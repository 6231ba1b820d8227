package entity

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PanelID is the stable decor id of a panel.
type PanelID uuid.UUID

// NewPanelID returns a random panel id.
func NewPanelID() PanelID {
	return PanelID(uuid.New())
}

var panelNamespace = uuid.MustParse("0b3c6f5e-5a43-4d0e-9a59-7f0c2e1d4b21")

// PanelIDFromName derives a stable id for panels that have no GUID of their own.
// Names are compared case-insensitively.
func PanelIDFromName(name string) PanelID {
	return PanelID(uuid.NewSHA1(panelNamespace, []byte(strings.ToLower(strings.TrimSpace(name)))))
}

// ParsePanelID parses a GUID, with or without surrounding braces.
func ParsePanelID(s string) (PanelID, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}")
	id, err := uuid.Parse(s)
	if err != nil {
		return PanelID{}, fmt.Errorf("%w %q: %v", ErrInvalidPanelID, s, err)
	}
	return PanelID(id), nil
}

// MustParsePanelID is like ParsePanelID but panics on error.
// It is meant for built-in roster constants.
func MustParsePanelID(s string) PanelID {
	id, err := ParsePanelID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id PanelID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether the id is unset.
func (id PanelID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// ShowState is the runtime display state of a panel.
type ShowState int

const (
	ShowHidden ShowState = iota
	ShowInactive
	ShowActive
	ShowFocused
)

func (s ShowState) String() string {
	switch s {
	case ShowInactive:
		return "inactive"
	case ShowActive:
		return "active"
	case ShowFocused:
		return "focused"
	default:
		return "hidden"
	}
}

// TrackStyle tells how a panel's track along its side is measured.
type TrackStyle int

const (
	TrackPercent TrackStyle = iota // Share of the side's adjustable extent
	TrackPixels                    // Fixed size in pixels
)

func (s TrackStyle) String() string {
	if s == TrackPixels {
		return "pixels"
	}
	return "percent"
}

// ParseTrackStyle resolves a style name. An empty name means percent.
func ParseTrackStyle(s string) (TrackStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "percent":
		return TrackPercent, nil
	case "pixels", "px":
		return TrackPixels, nil
	default:
		return TrackPercent, fmt.Errorf("unknown track style %q", s)
	}
}

// DefaultPanelTrack is the percentage track given to a panel that has none.
const DefaultPanelTrack = 100

// PanelSpec describes one roster entry.
type PanelSpec struct {
	ID      PanelID
	Name    string
	Title   string
	Edge    Edge
	Solo    bool
	Visible bool
	Track   int
	Style   TrackStyle
}

// Panel is a dockable frame: a title bar plus one content container.
type Panel struct {
	ID      PanelID
	Name    string
	Title   string
	Checked bool // User intent, the sole authority on whether the panel is wanted
	Track   int
	Style   TrackStyle

	mode      ContentMode
	edge      Edge
	titleAxis Axis
	state     ShowState
	solo      SoloContent
	clxn      CollectionContent
	rect      Rect
}

// NewPanel creates a hidden panel from its roster entry.
func NewPanel(spec PanelSpec) *Panel {
	p := &Panel{
		ID:      spec.ID,
		Name:    spec.Name,
		Title:   spec.Title,
		Checked: spec.Visible,
		Track:   spec.Track,
		Style:   spec.Style,
		mode:    ContentCollection,
		state:   ShowHidden,
	}
	if spec.Solo {
		p.mode = ContentSolo
	}
	if p.Track <= 0 && p.Style == TrackPercent {
		p.Track = DefaultPanelTrack
	}
	if p.Title == "" {
		p.Title = p.Name
	}
	p.SetOrientation(spec.Edge)
	return p
}

// Mode returns the content-sharing discipline, fixed at creation.
func (p *Panel) Mode() ContentMode { return p.mode }

// Edge returns the edge the panel is assigned to.
func (p *Panel) Edge() Edge { return p.edge }

// TitleAxis returns the direction the title bar runs in.
func (p *Panel) TitleAxis() Axis { return p.titleAxis }

// State returns the runtime show state.
func (p *Panel) State() ShowState { return p.state }

// Hidden reports whether the panel is not shown.
func (p *Panel) Hidden() bool { return p.state == ShowHidden }

// Rect returns the last rectangle assigned by the side layout.
func (p *Panel) Rect() Rect { return p.rect }

// SetRect records the rectangle assigned by the side layout.
func (p *Panel) SetRect(r Rect) { p.rect = r }

// SetOrientation records the edge and turns the title bar orthogonal to the
// side's stacking axis. Side membership is not changed.
func (p *Panel) SetOrientation(edge Edge) {
	p.edge = edge
	p.titleAxis = edge.Axis().Perpendicular()
}

// Show unhides the panel in the given state.
func (p *Panel) Show(state ShowState) {
	if state == ShowHidden {
		p.Hide()
		return
	}
	p.state = state
}

// Hide hides the panel and all of its content. Bindings are kept.
func (p *Panel) Hide() {
	p.state = ShowHidden
	p.solo.HideAll()
	p.clxn.HideAll()
}

// CloseAll hides the panel and disposes every collection binding.
// Solo content survives.
func (p *Panel) CloseAll() error {
	p.Hide()
	if p.mode == ContentCollection {
		return p.clxn.Clear()
	}
	return nil
}

// OnFocusGained marks a shown panel as focused.
func (p *Panel) OnFocusGained() {
	if !p.Hidden() {
		p.state = ShowFocused
	}
}

// OnFocusLost marks a shown panel as inactive.
func (p *Panel) OnFocusLost() {
	if !p.Hidden() {
		p.state = ShowInactive
	}
}

// Attach binds content to the panel. Solo panels ignore key and accept
// only one item.
func (p *Panel) Attach(key ContextKey, content ContentHandle) error {
	if p.mode == ContentSolo {
		return p.solo.Set(content)
	}
	return p.clxn.Add(key, content)
}

// Unbind removes the collection binding for key and returns its content.
// Solo content is never unbound.
func (p *Panel) Unbind(key ContextKey) ContentHandle {
	if p.mode == ContentSolo {
		return nil
	}
	return p.clxn.Remove(key)
}

// IsContained reports whether content exists for key. For solo panels any
// held content counts.
func (p *Panel) IsContained(key ContextKey) bool {
	if p.mode == ContentSolo {
		return p.solo.Occupied()
	}
	return p.clxn.Contains(key)
}

// Shuffle shows the content for key, hiding the rest, or hides everything
// when visible is false. It returns whether content was shown.
func (p *Panel) Shuffle(key ContextKey, visible bool) bool {
	if p.mode == ContentSolo {
		return p.solo.Shuffle(visible)
	}
	return p.clxn.Shuffle(key, visible)
}

// FocusContent moves keyboard focus into the content for key.
func (p *Panel) FocusContent(key ContextKey) {
	if p.mode == ContentSolo {
		p.solo.Focus()
		return
	}
	p.clxn.Focus(key)
}

// Solo returns the solo container. It is empty for collection panels.
func (p *Panel) Solo() *SoloContent { return &p.solo }

// Collection returns the collection container. It is empty for solo panels.
func (p *Panel) Collection() *CollectionContent { return &p.clxn }

// Contains reports whether a shown panel covers the point.
func (p *Panel) Contains(x, y int) bool {
	return !p.Hidden() && p.rect.Contains(x, y)
}
