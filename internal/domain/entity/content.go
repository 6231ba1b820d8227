package entity

import "errors"

// ContextKey identifies the document or view a collection binding was created for.
type ContextKey string

// NoKey is the context key used when no document is focused.
const NoKey ContextKey = ""

// ContentMode is the content-sharing discipline of a panel.
type ContentMode int

const (
	ContentSolo       ContentMode = iota // One global content item
	ContentCollection                    // One content item per document key
)

func (m ContentMode) String() string {
	if m == ContentSolo {
		return "solo"
	}
	return "collection"
}

// ContentHandle is the content shown inside a panel body.
// Implementations are supplied by the shell.
type ContentHandle interface {
	SetVisible(visible bool)
	Visible() bool
	Raise()
	Focus()
	Close() error
}

// Binding pairs a context key with the content created for it.
type Binding struct {
	Key     ContextKey
	Content ContentHandle
}

// SoloContent holds at most one content item that is shared by every document.
// It has no key: the single item is either present or not.
type SoloContent struct {
	content ContentHandle
}

// Set installs the single content item.
// It fails without touching the existing item when one is already held.
func (s *SoloContent) Set(c ContentHandle) error {
	if c == nil {
		return ErrNilContent
	}
	if s.content != nil {
		return ErrSoloOccupied
	}
	s.content = c
	return nil
}

// Content returns the held item, or nil.
func (s *SoloContent) Content() ContentHandle {
	return s.content
}

// Occupied reports whether the item is present.
func (s *SoloContent) Occupied() bool {
	return s.content != nil
}

// Shuffle shows and raises the item when visible is true, otherwise hides it.
// It returns whether an item was shown.
func (s *SoloContent) Shuffle(visible bool) bool {
	if s.content == nil {
		return false
	}
	if !visible {
		s.content.SetVisible(false)
		return false
	}
	s.content.Raise()
	s.content.SetVisible(true)
	return true
}

// HideAll hides the item if present.
func (s *SoloContent) HideAll() {
	if s.content != nil {
		s.content.SetVisible(false)
	}
}

// Focus moves keyboard focus into the item.
func (s *SoloContent) Focus() {
	if s.content != nil {
		s.content.Focus()
	}
}

// Dispose closes and drops the item. Clearing a panel never calls this;
// the owner of structural content must do it explicitly.
func (s *SoloContent) Dispose() error {
	if s.content == nil {
		return nil
	}
	c := s.content
	s.content = nil
	return c.Close()
}

// CollectionContent holds one binding per document key, in insertion order.
type CollectionContent struct {
	bindings []Binding
}

// Add appends a binding. Keys are not checked for duplicates;
// lookups resolve to the first match.
func (c *CollectionContent) Add(key ContextKey, content ContentHandle) error {
	if content == nil {
		return ErrNilContent
	}
	c.bindings = append(c.bindings, Binding{Key: key, Content: content})
	return nil
}

// Remove drops the first binding for key and returns its content without closing it.
func (c *CollectionContent) Remove(key ContextKey) ContentHandle {
	for i, b := range c.bindings {
		if b.Key == key {
			c.bindings = append(c.bindings[:i], c.bindings[i+1:]...)
			return b.Content
		}
	}
	return nil
}

// Find returns the content bound to key, or nil.
func (c *CollectionContent) Find(key ContextKey) ContentHandle {
	for _, b := range c.bindings {
		if b.Key == key {
			return b.Content
		}
	}
	return nil
}

// Contains reports whether a binding exists for key.
func (c *CollectionContent) Contains(key ContextKey) bool {
	return c.Find(key) != nil
}

// Shuffle makes the binding for key the only visible one when visible is true.
// With visible false every binding is hidden. It returns whether a binding was shown.
func (c *CollectionContent) Shuffle(key ContextKey, visible bool) bool {
	shown := false
	for _, b := range c.bindings {
		if visible && !shown && b.Key == key {
			b.Content.Raise()
			b.Content.SetVisible(true)
			shown = true
			continue
		}
		b.Content.SetVisible(false)
	}
	return shown
}

// HideAll hides every binding.
func (c *CollectionContent) HideAll() {
	for _, b := range c.bindings {
		b.Content.SetVisible(false)
	}
}

// Focus moves keyboard focus into the content bound to key.
func (c *CollectionContent) Focus(key ContextKey) {
	if content := c.Find(key); content != nil {
		content.Focus()
	}
}

// Clear closes and removes every binding. Close errors are joined.
func (c *CollectionContent) Clear() error {
	var errs []error
	for _, b := range c.bindings {
		if err := b.Content.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.bindings = nil
	return errors.Join(errs...)
}

// Len returns the number of bindings.
func (c *CollectionContent) Len() int {
	return len(c.bindings)
}

// Keys returns the bound keys in insertion order.
func (c *CollectionContent) Keys() []ContextKey {
	keys := make([]ContextKey, len(c.bindings))
	for i, b := range c.bindings {
		keys[i] = b.Key
	}
	return keys
}
