package model

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/phreebee/dockyard/internal/application/port"
	"github.com/phreebee/dockyard/internal/domain/entity"
	"github.com/phreebee/dockyard/internal/logging"
)

// TextContent is the panel content of the preview: a label and some flags
// the view reads back when drawing.
type TextContent struct {
	Label   string
	visible bool
	focused bool
	closed  bool
	raised  int
}

// NewTextContent creates hidden content showing label.
func NewTextContent(label string) *TextContent {
	return &TextContent{Label: label}
}

func (c *TextContent) SetVisible(visible bool) { c.visible = visible }
func (c *TextContent) Visible() bool           { return c.visible }
func (c *TextContent) Raise()                  { c.raised++ }
func (c *TextContent) Focus()                  { c.focused = true }
func (c *TextContent) Closed() bool            { return c.closed }

func (c *TextContent) Close() error {
	c.closed = true
	c.visible = false
	return nil
}

// PreviewShell is the document host of the preview: an ordered list of open
// documents, one of which may be focused.
type PreviewShell struct {
	docs    []string
	current int // -1 when no document is focused
	names   map[entity.PanelID]string
}

var _ port.Shell = (*PreviewShell)(nil)

// NewPreviewShell creates a shell with docs open and the first one focused.
func NewPreviewShell(docs ...string) *PreviewShell {
	s := &PreviewShell{docs: docs, current: -1, names: make(map[entity.PanelID]string)}
	if len(docs) > 0 {
		s.current = 0
	}
	return s
}

// Register records panel names so decorations can be labelled.
func (s *PreviewShell) Register(panels []*entity.Panel) {
	for _, p := range panels {
		s.names[p.ID] = p.Title
	}
}

func (s *PreviewShell) CurrentContext() (entity.ContextKey, bool) {
	if s.current < 0 || s.current >= len(s.docs) {
		return entity.NoKey, false
	}
	return entity.ContextKey(s.docs[s.current]), true
}

// Decorate builds content for every panel except on plain text documents,
// which have nothing to outline.
func (s *PreviewShell) Decorate(ctx context.Context, panel entity.PanelID, key entity.ContextKey) (entity.ContentHandle, error) {
	if strings.EqualFold(filepath.Ext(string(key)), ".txt") {
		return nil, nil
	}
	logging.FromContext(ctx).Debug().
		Str("panel", s.names[panel]).
		Str("context_key", string(key)).
		Msg("decorating panel")
	return NewTextContent(s.names[panel] + ": " + string(key)), nil
}

// Documents returns the open documents in tab order.
func (s *PreviewShell) Documents() []string {
	return append([]string(nil), s.docs...)
}

// Cycle focuses the document delta tabs away, wrapping around. With nothing
// focused it focuses the first document.
func (s *PreviewShell) Cycle(delta int) (entity.ContextKey, bool) {
	if len(s.docs) == 0 {
		return entity.NoKey, false
	}
	if s.current < 0 {
		s.current = 0
	} else {
		s.current = ((s.current+delta)%len(s.docs) + len(s.docs)) % len(s.docs)
	}
	return s.CurrentContext()
}

// Unfocus leaves no document focused.
func (s *PreviewShell) Unfocus() {
	s.current = -1
}

// CloseCurrent closes the focused document and focuses its right neighbour.
func (s *PreviewShell) CloseCurrent() (closed entity.ContextKey, ok bool) {
	closed, ok = s.CurrentContext()
	if !ok {
		return entity.NoKey, false
	}
	s.docs = append(s.docs[:s.current], s.docs[s.current+1:]...)
	switch {
	case len(s.docs) == 0:
		s.current = -1
	case s.current >= len(s.docs):
		s.current = len(s.docs) - 1
	}
	return closed, true
}
