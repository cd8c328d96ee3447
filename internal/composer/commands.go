package composer

import (
	"fmt"

	"github.com/dshills/wysiwyg/internal/composer/dom"
	"github.com/dshills/wysiwyg/internal/composer/selection"
	"github.com/dshills/wysiwyg/internal/composer/textunit"
)

// Select sets the selection. Offsets are UTF-16 code units; anchor may
// lie after focus. Out of range offsets fail with ErrRange.
func (m *Model) Select(anchor, focus int) (Update, error) {
	t := m.begin("Select")
	if err := t.sel.Select(anchor, focus, t.doc.Len()); err != nil {
		return Update{}, fmt.Errorf("select: %w", err)
	}
	if err := m.commit(t); err != nil {
		return Update{}, err
	}
	return m.keep(), nil
}

// ReplaceText replaces the selection with text, or inserts it at the
// caret. The caret ends up after the new text.
func (m *Model) ReplaceText(text string) (Update, error) {
	sel := m.tracker.Selection()
	if sel.IsCaret() && text == "" {
		return m.keep(), nil
	}

	t := m.begin("ReplaceText")
	style := t.sel.TypingStyle(t.doc)
	e, err := t.replace(sel.Start(), sel.End(), text, style)
	if err != nil {
		return Update{}, fmt.Errorf("replace text: %w", err)
	}
	t.sel.Set(selection.Caret(e.Start + e.NewLen))
	t.sel.ClearPending()
	return m.finish(t)
}

// ReplaceTextIn replaces [start, end) with text regardless of the
// selection, which is carried through the edit.
func (m *Model) ReplaceTextIn(text string, start, end int) (Update, error) {
	if err := checkRange(m.doc, start, end); err != nil {
		return Update{}, fmt.Errorf("replace text in: %w", err)
	}
	if start == end && text == "" {
		return m.keep(), nil
	}

	t := m.begin("ReplaceTextIn")
	if _, err := t.replace(start, end, text, t.doc.StyleAt(start)); err != nil {
		return Update{}, fmt.Errorf("replace text in: %w", err)
	}
	t.sel.ClearPending()
	return m.finish(t)
}

// Backspace deletes the selection, or the grapheme cluster before the
// caret. At the start of a block it merges the block into the previous
// one; an empty block of another kind is first turned into a paragraph.
func (m *Model) Backspace() (Update, error) {
	sel := m.tracker.Selection()
	if !sel.IsCaret() {
		return m.deleteRange("Backspace", sel.Start(), sel.End())
	}

	c := sel.Focus
	bi := m.doc.BlockIndexAt(c)
	blockStart, _ := m.doc.BlockRange(bi)
	b := m.doc.Block(bi)

	if c == blockStart {
		switch {
		case b.Kind != dom.Paragraph && b.IsEmpty():
			return m.setBlockKind("Backspace", c, c, dom.Paragraph)
		case bi == 0:
			return m.keep(), nil
		default:
			return m.deleteRange("Backspace", c-1, c)
		}
	}

	prev := textunit.PrevGrapheme(b.Text(), c-blockStart)
	return m.deleteRange("Backspace", blockStart+prev, c)
}

// Delete deletes the selection, or the grapheme cluster after the caret.
// At the end of a block it merges the next block into it.
func (m *Model) Delete() (Update, error) {
	sel := m.tracker.Selection()
	if !sel.IsCaret() {
		return m.deleteRange("Delete", sel.Start(), sel.End())
	}

	c := sel.Focus
	if c == m.doc.Len() {
		return m.keep(), nil
	}
	bi := m.doc.BlockIndexAt(c)
	blockStart, blockEnd := m.doc.BlockRange(bi)
	if c == blockEnd {
		return m.deleteRange("Delete", c, c+1)
	}

	next := textunit.NextGrapheme(m.doc.Block(bi).Text(), c-blockStart)
	return m.deleteRange("Delete", c, blockStart+next)
}

// DeleteIn deletes [start, end) and leaves the caret at start.
func (m *Model) DeleteIn(start, end int) (Update, error) {
	if err := checkRange(m.doc, start, end); err != nil {
		return Update{}, fmt.Errorf("delete in: %w", err)
	}
	return m.deleteRange("DeleteIn", start, end)
}

func (m *Model) deleteRange(name string, start, end int) (Update, error) {
	if start == end {
		return m.keep(), nil
	}
	t := m.begin(name)
	e, err := t.replace(start, end, "", dom.Style{})
	if err != nil {
		return Update{}, fmt.Errorf("%s: %w", name, err)
	}
	t.sel.Set(selection.Caret(e.Start))
	t.sel.ClearPending()
	return m.finish(t)
}

// Enter splits the current block at the caret, replacing a non-empty
// selection first. An empty list item is turned into a paragraph
// instead. Code blocks cannot be split.
func (m *Model) Enter() (Update, error) {
	sel := m.tracker.Selection()
	if kind := m.doc.Block(m.doc.BlockIndexAt(sel.Start())).Kind; kind == dom.CodeBlock {
		return Update{}, fmt.Errorf("%w: enter in %s", ErrInvalidCommand, kind)
	}

	t := m.begin("Enter")
	if !sel.IsCaret() {
		if _, err := t.replace(sel.Start(), sel.End(), "", dom.Style{}); err != nil {
			return Update{}, fmt.Errorf("enter: %w", err)
		}
	}
	c := t.doc.Snap(sel.Start())

	bi := t.doc.BlockIndexAt(c)
	if b := t.doc.Block(bi); b.Kind.IsListItem() && b.IsEmpty() {
		if err := t.doc.SetBlockKind(c, c, dom.Paragraph); err != nil {
			return Update{}, fmt.Errorf("enter: %w", err)
		}
		t.record = true
		t.sel.Set(selection.Caret(c))
	} else {
		if _, err := t.replace(c, c, dom.BlockSeparator, dom.Style{}); err != nil {
			return Update{}, fmt.Errorf("enter: %w", err)
		}
		t.sel.Set(selection.Caret(c + 1))
	}
	t.sel.ClearPending()
	return m.finish(t)
}

// finish commits a transaction and renders the new content.
func (m *Model) finish(t *txn) (Update, error) {
	if err := m.commit(t); err != nil {
		return Update{}, err
	}
	return m.replaceAll(), nil
}

func checkRange(doc *dom.Document, start, end int) error {
	if start < 0 || start > end || end > doc.Len() {
		return fmt.Errorf("%w: [%d, %d) in document of length %d", ErrRange, start, end, doc.Len())
	}
	return nil
}
