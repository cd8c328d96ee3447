package composer

import (
	"log/slog"

	"github.com/dshills/wysiwyg/internal/composer/action"
	"github.com/dshills/wysiwyg/internal/composer/history"
	"github.com/dshills/wysiwyg/internal/logging"
)

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used for command tracing.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithMaxUndoEntries bounds the undo history.
func WithMaxUndoEntries(n int) Option {
	return func(m *Model) {
		m.maxUndo = n
	}
}

// WithIDGenerator sets the generator of pending action identifiers.
func WithIDGenerator(gen action.IDGenerator) Option {
	return func(m *Model) {
		m.newID = gen
	}
}

// WithContent sets the initial plain text content. Newlines start new
// paragraphs. The caret is placed at the end of the content.
func WithContent(text string) Option {
	return func(m *Model) {
		m.initialText = text
	}
}

func defaultModel() *Model {
	return &Model{
		logger:  logging.Nop(),
		maxUndo: history.DefaultMaxEntries,
	}
}
