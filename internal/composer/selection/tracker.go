package selection

import (
	"github.com/dshills/wysiwyg/internal/composer/dom"
)

// Tracker owns the current selection of a composer together with the
// sticky format toggles armed at a caret. It performs no locking.
type Tracker struct {
	sel     Selection
	pending dom.Format
}

// NewTracker creates a tracker with a caret at 0.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Selection returns the current selection.
func (t *Tracker) Selection() Selection {
	return t.sel
}

// Select sets anchor and focus, failing if either lies outside
// [0, length]. Moving the selection disarms pending formats.
func (t *Tracker) Select(anchor, focus, length int) error {
	s := New(anchor, focus)
	if err := s.Validate(length); err != nil {
		return err
	}
	if s != t.sel {
		t.pending = 0
	}
	t.sel = s
	return nil
}

// Set replaces the selection without validation or side effects. It is
// used when the engine places the selection after an edit it computed.
func (t *Tracker) Set(s Selection) {
	t.sel = s
}

// Apply transforms the selection through a document edit.
func (t *Tracker) Apply(e Edit) {
	t.sel = TransformSelection(t.sel, e)
}

// Pending returns the sticky format toggles armed at the caret.
func (t *Tracker) Pending() dom.Format {
	return t.pending
}

// TogglePending flips a sticky format toggle.
func (t *Tracker) TogglePending(f dom.Format) {
	t.pending = t.pending.Toggle(f)
}

// SetPending replaces the sticky format toggles.
func (t *Tracker) SetPending(f dom.Format) {
	t.pending = f
}

// ClearPending disarms all sticky format toggles.
func (t *Tracker) ClearPending() {
	t.pending = 0
}

// TypingStyle returns the style that text typed at the caret receives:
// the style inherited from the document, XOR the pending toggles.
func (t *Tracker) TypingStyle(doc *dom.Document) dom.Style {
	s := doc.StyleAt(t.sel.Start())
	s.Formats ^= t.pending
	return s
}

// Positions returns anchor and focus in tree coordinates.
func (t *Tracker) Positions(doc *dom.Document) (anchor, focus dom.Position, err error) {
	if anchor, err = doc.Position(t.sel.Anchor); err != nil {
		return
	}
	focus, err = doc.Position(t.sel.Focus)
	return
}

// Clone returns an independent copy of the tracker.
func (t *Tracker) Clone() *Tracker {
	c := *t
	return &c
}
