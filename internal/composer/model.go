package composer

import (
	"fmt"
	"log/slog"

	"github.com/dshills/wysiwyg/internal/composer/action"
	"github.com/dshills/wysiwyg/internal/composer/dom"
	"github.com/dshills/wysiwyg/internal/composer/history"
	"github.com/dshills/wysiwyg/internal/composer/menu"
	"github.com/dshills/wysiwyg/internal/composer/selection"
)

// Model is a rich-text composer: a formatted document, the selection in
// it, pending host actions, and undo history. Each command applies to a
// working copy of that state which replaces the live state only once it
// validates, so a failing command never leaves a partial change behind.
//
// Model is not safe for concurrent use.
type Model struct {
	doc     *dom.Document
	tracker *selection.Tracker
	actions *action.Registry
	history *history.History
	logger  *slog.Logger

	maxUndo     int
	newID       action.IDGenerator
	initialText string
}

// New creates a composer. Without options it holds one empty paragraph
// with the caret at 0.
func New(opts ...Option) *Model {
	m := defaultModel()
	for _, opt := range opts {
		opt(m)
	}
	m.doc = dom.NewFromText(m.initialText)
	m.tracker = selection.NewTracker()
	m.tracker.Set(selection.Caret(m.doc.Len()))
	m.actions = action.NewRegistry(m.newID)
	m.history = history.New(m.maxUndo)
	m.logger.Debug("composer created", "length", m.doc.Len())
	return m
}

// Text returns the flattened document text.
func (m *Model) Text() string {
	return m.doc.Text()
}

// Len returns the document length in UTF-16 code units.
func (m *Model) Len() int {
	return m.doc.Len()
}

// Document returns a copy of the document.
func (m *Model) Document() *dom.Document {
	return m.doc.Clone()
}

// Selection returns the current selection.
func (m *Model) Selection() selection.Selection {
	return m.tracker.Selection()
}

// PendingFormats returns the sticky format toggles armed at the caret.
func (m *Model) PendingFormats() dom.Format {
	return m.tracker.Pending()
}

// PendingActions returns the actions awaiting a host response, in the
// order they were created.
func (m *Model) PendingActions() []action.Action {
	return m.actions.Pending()
}

// CanUndo reports whether Undo would change the state.
func (m *Model) CanUndo() bool {
	return m.history.CanUndo()
}

// CanRedo reports whether Redo would change the state.
func (m *Model) CanRedo() bool {
	return m.history.CanRedo()
}

// MenuState computes the menu for the current state.
func (m *Model) MenuState() menu.State {
	return menu.Compute(menu.Input{
		Doc:       m.doc,
		Selection: m.tracker.Selection(),
		Pending:   m.tracker.Pending(),
		CanUndo:   m.history.CanUndo(),
		CanRedo:   m.history.CanRedo(),
	})
}

// Tree returns a debug rendering of the document tree.
func (m *Model) Tree() string {
	return m.doc.Tree()
}

// keep builds an update that leaves the host content alone.
func (m *Model) keep(created ...action.Action) Update {
	return Update{text: Keep{}, menu: m.MenuState(), actions: created}
}

// replaceAll builds an update carrying the full rendered content.
func (m *Model) replaceAll(created ...action.Action) Update {
	sel := m.tracker.Selection()
	return Update{
		text:    ReplaceAll{HTML: m.doc.HTML(), Start: sel.Anchor, End: sel.Focus},
		menu:    m.MenuState(),
		actions: created,
	}
}

// txn is the working copy a command mutates.
type txn struct {
	name    string
	doc     *dom.Document
	sel     *selection.Tracker
	actions *action.Registry

	// record is set once the document changes; the pre-command
	// snapshot is then pushed onto the undo stack.
	record      bool
	invalidated []action.ID
}

func (m *Model) begin(name string) *txn {
	return &txn{
		name:    name,
		doc:     m.doc.Clone(),
		sel:     m.tracker.Clone(),
		actions: m.actions.Clone(),
	}
}

// replace edits the working document and carries the selection and the
// pending actions through the edit.
// Offsets inside a surrogate pair are snapped first, so the returned
// Edit describes what actually changed.
func (t *txn) replace(start, end int, text string, style dom.Style) (selection.Edit, error) {
	start, end = t.doc.Snap(start), t.doc.Snap(end)
	before := t.doc.Len()
	if err := t.doc.Replace(start, end, text, style); err != nil {
		return selection.Edit{}, err
	}
	e := selection.Edit{Start: start, End: end}
	e.NewLen = t.doc.Len() - before + (end - start)
	t.sel.Apply(e)
	t.invalidated = append(t.invalidated, t.actions.Apply(e)...)
	t.record = true
	return e, nil
}

// commit validates the working copy and swaps it in.
func (m *Model) commit(t *txn) error {
	if err := t.doc.Validate(); err != nil {
		m.logger.Error("command rejected", "command", t.name, "error", err)
		return fmt.Errorf("%w: %s: %w", ErrInternal, t.name, err)
	}
	if err := t.sel.Selection().Validate(t.doc.Len()); err != nil {
		m.logger.Error("command rejected", "command", t.name, "error", err)
		return fmt.Errorf("%w: %s: %w", ErrInternal, t.name, err)
	}

	if t.record {
		m.history.Push(history.Entry{
			Doc:         m.doc,
			Selection:   m.tracker.Selection(),
			Description: t.name,
		})
	}
	m.doc, m.tracker, m.actions = t.doc, t.sel, t.actions

	attrs := []any{
		"command", t.name,
		"selection", m.tracker.Selection().String(),
		"length", m.doc.Len(),
	}
	if len(t.invalidated) > 0 {
		attrs = append(attrs, "invalidated", t.invalidated)
	}
	m.logger.Debug("command applied", attrs...)
	return nil
}
