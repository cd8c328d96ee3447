// Package history provides undo/redo for the composer.
//
// Every entry is a full snapshot of the document and selection taken
// before a mutation; undoing restores the snapshot wholesale.
//
//	h := history.New(100)
//	h.Push(history.Entry{Doc: doc.Clone(), Selection: sel, Description: "Bold"})
//	prev, err := h.Undo(current)
//	next, err := h.Redo(prev)
package history

import (
	"errors"
	"time"

	"github.com/dshills/wysiwyg/internal/composer/dom"
	"github.com/dshills/wysiwyg/internal/composer/selection"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the undo stack when no limit is given.
const DefaultMaxEntries = 1000

// Entry is a snapshot of composer state.
type Entry struct {
	Doc         *dom.Document
	Selection   selection.Selection
	Description string
	Timestamp   time.Time
}

// History manages undo/redo stacks. It performs no locking.
type History struct {
	undoStack  []Entry
	redoStack  []Entry
	maxEntries int
}

// New creates a history keeping at most maxEntries undo entries.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Push records the state preceding a mutation and clears the redo stack.
func (h *History) Push(e Entry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	h.undoStack = append(h.undoStack, e)
	h.redoStack = nil

	// Enforce max entries
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo pops the most recent entry, saving current for Redo.
func (h *History) Undo(current Entry) (Entry, error) {
	if len(h.undoStack) == 0 {
		return Entry{}, ErrNothingToUndo
	}
	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	current.Description = e.Description
	h.redoStack = append(h.redoStack, current)
	return e, nil
}

// Redo pops the most recently undone entry, saving current for Undo.
func (h *History) Redo(current Entry) (Entry, error) {
	if len(h.redoStack) == 0 {
		return Entry{}, ErrNothingToRedo
	}
	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	current.Description = e.Description
	h.undoStack = append(h.undoStack, current)
	return e, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoCount returns the number of available undo entries.
func (h *History) UndoCount() int {
	return len(h.undoStack)
}

// RedoCount returns the number of available redo entries.
func (h *History) RedoCount() int {
	return len(h.redoStack)
}

// Clear removes all entries.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}
