// Package selection tracks the caret or selection of a composer.
package selection

import (
	"fmt"

	"github.com/dshills/wysiwyg/internal/composer/dom"
)

// ErrRange indicates a selection offset outside the document. It is the
// same sentinel the document uses for bad ranges.
var ErrRange = dom.ErrRange

// Selection is a directional pair of UTF-16 code unit offsets.
// Anchor is where the selection started; Focus is where it ends.
// When Anchor == Focus the selection is a caret.
type Selection struct {
	Anchor int
	Focus  int
}

// New creates a selection from anchor to focus.
func New(anchor, focus int) Selection {
	return Selection{Anchor: anchor, Focus: focus}
}

// Caret creates a collapsed selection at offset.
func Caret(offset int) Selection {
	return Selection{Anchor: offset, Focus: offset}
}

// IsCaret returns true if the selection has no extent.
func (s Selection) IsCaret() bool {
	return s.Anchor == s.Focus
}

// Start returns the lower bound of the selection.
func (s Selection) Start() int {
	return min(s.Anchor, s.Focus)
}

// End returns the upper bound of the selection.
func (s Selection) End() int {
	return max(s.Anchor, s.Focus)
}

// Len returns the number of code units covered.
func (s Selection) Len() int {
	return s.End() - s.Start()
}

// IsBackward returns true if the focus lies before the anchor.
func (s Selection) IsBackward() bool {
	return s.Focus < s.Anchor
}

// CollapseToStart returns a caret at the start of the selection.
func (s Selection) CollapseToStart() Selection {
	return Caret(s.Start())
}

// CollapseToEnd returns a caret at the end of the selection.
func (s Selection) CollapseToEnd() Selection {
	return Caret(s.End())
}

// Validate checks both offsets against a document length.
func (s Selection) Validate(length int) error {
	if s.Anchor < 0 || s.Focus < 0 || s.Anchor > length || s.Focus > length {
		return fmt.Errorf("%w: %s in document of length %d", ErrRange, s, length)
	}
	return nil
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsCaret() {
		return fmt.Sprintf("Caret(%d)", s.Focus)
	}
	dir := "→"
	if s.IsBackward() {
		dir = "←"
	}
	return fmt.Sprintf("Selection(%d%s%d)", s.Anchor, dir, s.Focus)
}
