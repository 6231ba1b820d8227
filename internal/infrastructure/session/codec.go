// Package session reads and writes the docking sub-tree of a session file.
//
// The current format is
//
//	<Docking version="2">
//	  <Sides left="250" right="250" bottom="100" tools="65" options="30"/>
//	  <Dock decor="{64ec31fe-...}" side="left" order="0" track="40" visible="true"/>
//	</Docking>
//
// Older shells wrote only the names of checked panels:
//
//	<Decors><Decor name="outline"/></Decors>
//
// Both may appear anywhere inside a larger document; the first one found is used.
package session

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/phreebee/dockyard/internal/application/port"
	"github.com/phreebee/dockyard/internal/domain/entity"
)

// FormatVersion is written into the version attribute of <Docking>.
const FormatVersion = 2

// ErrNoLayout is returned when the input holds neither docking format.
var ErrNoLayout = errors.New("no docking layout found")

type dockingXML struct {
	XMLName xml.Name  `xml:"Docking"`
	Version int       `xml:"version,attr,omitempty"`
	Sides   *sidesXML `xml:"Sides"`
	Docks   []dockXML `xml:"Dock"`
}

type sidesXML struct {
	Left    string `xml:"left,attr,omitempty"`
	Right   string `xml:"right,attr,omitempty"`
	Bottom  string `xml:"bottom,attr,omitempty"`
	Tools   string `xml:"tools,attr,omitempty"`
	Options string `xml:"options,attr,omitempty"`
}

// Attributes stay strings so a malformed value spoils one record, not the file.
type dockXML struct {
	Decor   string `xml:"decor,attr"`
	Side    string `xml:"side,attr,omitempty"`
	Order   string `xml:"order,attr,omitempty"`
	Track   string `xml:"track,attr,omitempty"`
	Visible string `xml:"visible,attr,omitempty"`
}

type decorsXML struct {
	Decors []struct {
		Name string `xml:"name,attr"`
	} `xml:"Decor"`
}

// Codec implements port.LayoutCodec over XML.
type Codec struct{}

var _ port.LayoutCodec = Codec{}

// NewCodec creates the session XML codec.
func NewCodec() Codec {
	return Codec{}
}

// Encode writes layout as a <Docking> element.
func (Codec) Encode(w io.Writer, layout *entity.DockLayout) error {
	if layout == nil {
		return errors.New("layout cannot be nil")
	}
	doc := dockingXML{Version: FormatVersion}
	if len(layout.Sides) > 0 {
		doc.Sides = &sidesXML{}
		for edge, track := range layout.Sides {
			if field := doc.Sides.field(edge); field != nil {
				*field = strconv.Itoa(track)
			}
		}
	}
	for _, e := range layout.Entries {
		d := dockXML{
			Decor:   e.Panel,
			Order:   strconv.Itoa(e.Order),
			Visible: strconv.FormatBool(e.Visible),
		}
		if e.Edge != entity.EdgeKeep {
			d.Side = e.Edge.String()
		}
		if e.Track >= 0 {
			d.Track = strconv.Itoa(e.Track)
		}
		doc.Docks = append(doc.Docks, d)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode docking layout: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Decode reads the first docking element from r. Records that cannot be used
// are left out and described in the returned warnings; only unreadable XML or
// a missing docking element is an error.
func (Codec) Decode(r io.Reader) (*entity.DockLayout, []error, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, nil, ErrNoLayout
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read session xml: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "Docking":
			var doc dockingXML
			if err := dec.DecodeElement(&doc, &start); err != nil {
				return nil, nil, fmt.Errorf("decode docking layout: %w", err)
			}
			layout, warnings := doc.layout()
			return layout, warnings, nil
		case "Decors":
			var doc decorsXML
			if err := dec.DecodeElement(&doc, &start); err != nil {
				return nil, nil, fmt.Errorf("decode legacy decors: %w", err)
			}
			layout, warnings := doc.layout()
			return layout, warnings, nil
		}
	}
}

func (d *dockingXML) layout() (*entity.DockLayout, []error) {
	layout := &entity.DockLayout{}
	var warnings []error

	if d.Sides != nil {
		layout.Sides = make(map[entity.Edge]int)
		for _, edge := range entity.Edges() {
			raw := strings.TrimSpace(*d.Sides.field(edge))
			if raw == "" {
				continue
			}
			track, err := strconv.Atoi(raw)
			if err != nil || track < 0 {
				warnings = append(warnings, fmt.Errorf("side %s: unreadable track %q, using %d", edge, raw, edge.DefaultTrack()))
				track = edge.DefaultTrack()
			}
			layout.Sides[edge] = track
		}
	}

	for i, rec := range d.Docks {
		entry, recWarnings, ok := rec.entry(i)
		warnings = append(warnings, recWarnings...)
		if ok {
			layout.Entries = append(layout.Entries, entry)
		}
	}
	return layout, warnings
}

// entry converts one record. It reports false when the record must be skipped.
func (rec dockXML) entry(index int) (entity.LayoutEntry, []error, bool) {
	var warnings []error
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Errorf("record %d: "+format, append([]any{index}, args...)...))
	}

	entry := entity.LayoutEntry{
		Panel:   strings.TrimSpace(rec.Decor),
		Edge:    entity.EdgeKeep,
		Order:   index,
		Track:   entity.TrackUnset,
		Visible: true,
	}
	if entry.Panel == "" {
		warn("missing decor, skipped")
		return entry, warnings, false
	}

	if side := strings.TrimSpace(rec.Side); side != "" {
		edge, err := entity.ParseEdge(side)
		if err != nil {
			warn("%s: %v, skipped", entry.Panel, err)
			return entry, warnings, false
		}
		entry.Edge = edge
	}
	if raw := strings.TrimSpace(rec.Order); raw != "" {
		if order, err := strconv.Atoi(raw); err == nil {
			entry.Order = order
		} else {
			warn("%s: unreadable order %q", entry.Panel, raw)
		}
	}
	if raw := strings.TrimSpace(rec.Track); raw != "" {
		if track, err := strconv.Atoi(raw); err == nil && track >= 0 {
			entry.Track = track
		} else {
			warn("%s: unreadable track %q", entry.Panel, raw)
		}
	}
	if raw := strings.TrimSpace(rec.Visible); raw != "" {
		if visible, err := strconv.ParseBool(raw); err == nil {
			entry.Visible = visible
		} else {
			warn("%s: unreadable visible %q", entry.Panel, raw)
		}
	}
	return entry, warnings, true
}

func (d *decorsXML) layout() (*entity.DockLayout, []error) {
	layout := &entity.DockLayout{}
	var warnings []error
	for i, decor := range d.Decors {
		name := strings.TrimSpace(decor.Name)
		if name == "" {
			warnings = append(warnings, fmt.Errorf("decor %d: missing name, skipped", i))
			continue
		}
		layout.Entries = append(layout.Entries, entity.LayoutEntry{
			Panel:   name,
			Edge:    entity.EdgeKeep,
			Order:   i,
			Track:   entity.TrackKeep,
			Visible: true,
		})
	}
	return layout, warnings
}

func (s *sidesXML) field(edge entity.Edge) *string {
	switch edge {
	case entity.EdgeLeft:
		return &s.Left
	case entity.EdgeRight:
		return &s.Right
	case entity.EdgeBottom:
		return &s.Bottom
	case entity.EdgeTools:
		return &s.Tools
	case entity.EdgeOptions:
		return &s.Options
	default:
		return nil
	}
}
