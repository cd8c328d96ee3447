package composer

import (
	"fmt"

	"github.com/dshills/wysiwyg/internal/composer/history"
)

// Undo restores the state before the last document change. Pending
// actions are dropped since the ranges they track no longer apply.
func (m *Model) Undo() (Update, error) {
	prev, err := m.history.Undo(m.snapshot())
	if err != nil {
		return Update{}, fmt.Errorf("undo: %w", err)
	}
	m.restore(prev, "Undo")
	return m.replaceAll(), nil
}

// Redo reapplies the last undone change.
func (m *Model) Redo() (Update, error) {
	next, err := m.history.Redo(m.snapshot())
	if err != nil {
		return Update{}, fmt.Errorf("redo: %w", err)
	}
	m.restore(next, "Redo")
	return m.replaceAll(), nil
}

func (m *Model) snapshot() history.Entry {
	return history.Entry{Doc: m.doc, Selection: m.tracker.Selection()}
}

func (m *Model) restore(e history.Entry, name string) {
	m.doc = e.Doc.Clone()
	m.tracker.Set(e.Selection)
	m.tracker.ClearPending()
	if m.actions.Len() > 0 {
		m.logger.Debug("pending actions dropped", "command", name, "count", m.actions.Len())
		m.actions.Clear()
	}
	m.logger.Debug("command applied", "command", name, "change", e.Description, "length", m.doc.Len())
}
