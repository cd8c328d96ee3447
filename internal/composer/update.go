package composer

import (
	"fmt"

	"github.com/dshills/wysiwyg/internal/composer/action"
	"github.com/dshills/wysiwyg/internal/composer/menu"
	"github.com/dshills/wysiwyg/internal/composer/textunit"
)

// TextUpdate tells the host what to do with its rendered content. It is
// either Keep or ReplaceAll.
type TextUpdate interface {
	isTextUpdate()
}

// Keep leaves the host's content untouched.
type Keep struct{}

// ReplaceAll replaces the host's content and selection.
type ReplaceAll struct {
	HTML  string
	Start int // selection anchor in UTF-16 code units
	End   int // selection focus in UTF-16 code units
}

func (Keep) isTextUpdate()       {}
func (ReplaceAll) isTextUpdate() {}

// CodeUnits returns the HTML as UTF-16 code units.
func (r ReplaceAll) CodeUnits() []uint16 {
	return textunit.Encode(r.HTML)
}

// String returns a short description of the update.
func (r ReplaceAll) String() string {
	return fmt.Sprintf("ReplaceAll(%q, %d, %d)", r.HTML, r.Start, r.End)
}

// String returns "Keep".
func (Keep) String() string {
	return "Keep"
}

// Update is what every composer command returns: the content to show,
// the menu state, and the pending actions created by the command.
type Update struct {
	text    TextUpdate
	menu    menu.State
	actions []action.Action
}

// TextUpdate returns the content change.
func (u Update) TextUpdate() TextUpdate {
	if u.text == nil {
		return Keep{}
	}
	return u.text
}

// MenuState returns the menu state after the command.
func (u Update) MenuState() menu.State {
	return u.menu
}

// Actions returns the pending actions the command created.
func (u Update) Actions() []action.Action {
	return u.actions
}
