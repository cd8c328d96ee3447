package composer

import (
	"errors"

	"github.com/dshills/wysiwyg/internal/composer/action"
	"github.com/dshills/wysiwyg/internal/composer/dom"
	"github.com/dshills/wysiwyg/internal/composer/history"
)

// Errors returned by composer commands.
var (
	// ErrRange indicates an offset outside [0, length] or a reversed range.
	ErrRange = dom.ErrRange

	// ErrInvalidCommand indicates a command that is structurally
	// inapplicable to the current state.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrInternal indicates a command that would have broken a document
	// invariant. The composer state is left untouched.
	ErrInternal = errors.New("internal error")

	// ErrNothingToUndo indicates an empty undo history.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates an empty redo history.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrInvalidState indicates a state dump that cannot be restored.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidHTML indicates markup that cannot be loaded.
	ErrInvalidHTML = dom.ErrInvalidHTML

	// ErrInvalidResponse indicates a host response that does not match
	// the pending action it answers.
	ErrInvalidResponse = action.ErrInvalidResponse
)
