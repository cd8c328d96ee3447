package composer

import (
	"fmt"

	"github.com/dshills/wysiwyg/internal/composer/dom"
	"github.com/dshills/wysiwyg/internal/composer/menu"
)

// Bold toggles bold over the selection. At a caret it arms or disarms
// bold for the next typed text.
func (m *Model) Bold() (Update, error) {
	return m.toggleFormat(menu.Bold)
}

// Italic toggles italic like Bold.
func (m *Model) Italic() (Update, error) {
	return m.toggleFormat(menu.Italic)
}

// StrikeThrough toggles strike-through like Bold.
func (m *Model) StrikeThrough() (Update, error) {
	return m.toggleFormat(menu.StrikeThrough)
}

// Underline toggles underline like Bold.
func (m *Model) Underline() (Update, error) {
	return m.toggleFormat(menu.Underline)
}

// InlineCode toggles inline code like Bold.
func (m *Model) InlineCode() (Update, error) {
	return m.toggleFormat(menu.InlineCode)
}

// CodeBlock toggles every block touched by the selection between code
// block and paragraph.
func (m *Model) CodeBlock() (Update, error) {
	return m.toggleBlock(menu.CodeBlock)
}

// Quote toggles every touched block between quote and paragraph.
func (m *Model) Quote() (Update, error) {
	return m.toggleBlock(menu.Quote)
}

// OrderedList toggles every touched block between ordered list item and
// paragraph.
func (m *Model) OrderedList() (Update, error) {
	return m.toggleBlock(menu.OrderedList)
}

// UnorderedList toggles every touched block between unordered list item
// and paragraph.
func (m *Model) UnorderedList() (Update, error) {
	return m.toggleBlock(menu.UnorderedList)
}

// Apply runs the command a menu action stands for.
func (m *Model) Apply(a menu.Action) (Update, error) {
	switch a {
	case menu.Bold, menu.Italic, menu.StrikeThrough, menu.Underline, menu.InlineCode:
		return m.toggleFormat(a)
	case menu.CodeBlock, menu.Quote, menu.OrderedList, menu.UnorderedList:
		return m.toggleBlock(a)
	case menu.Link:
		return m.SetLink()
	case menu.Undo:
		return m.Undo()
	case menu.Redo:
		return m.Redo()
	default:
		return Update{}, fmt.Errorf("%w: unknown action %q", ErrInvalidCommand, a)
	}
}

func (m *Model) toggleFormat(a menu.Action) (Update, error) {
	f, _ := menu.FormatFor(a)
	if !m.MenuState().Get(a).Enabled {
		return Update{}, fmt.Errorf("%w: %s is disabled here", ErrInvalidCommand, a)
	}

	name := "Toggle " + f.String()
	t := m.begin(name)
	sel := t.sel.Selection()
	if sel.IsCaret() {
		t.sel.TogglePending(f)
		if err := m.commit(t); err != nil {
			return Update{}, err
		}
		return m.keep(), nil
	}

	if _, err := t.doc.ToggleFormat(sel.Start(), sel.End(), f); err != nil {
		return Update{}, fmt.Errorf("%s: %w", name, err)
	}
	// A selection holding only block separators has no text to format.
	if t.doc.Equal(m.doc) {
		return m.keep(), nil
	}
	t.record = true
	t.sel.ClearPending()
	return m.finish(t)
}

func (m *Model) toggleBlock(a menu.Action) (Update, error) {
	kind, _ := menu.BlockKindFor(a)
	st := m.MenuState().Get(a)
	if !st.Enabled {
		return Update{}, fmt.Errorf("%w: %s is disabled here", ErrInvalidCommand, a)
	}

	target := kind
	if st.Active {
		target = dom.Paragraph
	}
	return m.setBlockKind("Set "+target.String(), m.tracker.Selection().Start(), m.tracker.Selection().End(), target)
}

func (m *Model) setBlockKind(name string, start, end int, kind dom.BlockKind) (Update, error) {
	t := m.begin(name)
	if err := t.doc.SetBlockKind(start, end, kind); err != nil {
		return Update{}, fmt.Errorf("%s: %w", name, err)
	}
	t.record = true
	t.sel.ClearPending()
	return m.finish(t)
}
