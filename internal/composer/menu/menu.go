// Package menu derives the enabled and active status of every formatting
// action from a document and a selection. Computation is pure.
package menu

import (
	"fmt"
	"strings"

	"github.com/dshills/wysiwyg/internal/composer/dom"
	"github.com/dshills/wysiwyg/internal/composer/selection"
)

// Action names a formatting command shown in a host menu.
type Action string

const (
	Bold          Action = "bold"
	Italic        Action = "italic"
	StrikeThrough Action = "strike_through"
	Underline     Action = "underline"
	InlineCode    Action = "inline_code"
	Link          Action = "link"
	CodeBlock     Action = "code_block"
	Quote         Action = "quote"
	OrderedList   Action = "ordered_list"
	UnorderedList Action = "unordered_list"
	Undo          Action = "undo"
	Redo          Action = "redo"
)

// All lists every action in menu order.
var All = []Action{
	Bold, Italic, StrikeThrough, Underline, InlineCode, Link,
	CodeBlock, Quote, OrderedList, UnorderedList, Undo, Redo,
}

var inlineFormats = map[Action]dom.Format{
	Bold:          dom.Bold,
	Italic:        dom.Italic,
	StrikeThrough: dom.StrikeThrough,
	Underline:     dom.Underline,
	InlineCode:    dom.InlineCode,
}

var blockKinds = map[Action]dom.BlockKind{
	CodeBlock:     dom.CodeBlock,
	Quote:         dom.Quote,
	OrderedList:   dom.OrderedListItem,
	UnorderedList: dom.UnorderedListItem,
}

// FormatFor returns the inline format toggled by an action.
func FormatFor(a Action) (dom.Format, bool) {
	f, ok := inlineFormats[a]
	return f, ok
}

// BlockKindFor returns the block kind toggled by an action.
func BlockKindFor(a Action) (dom.BlockKind, bool) {
	k, ok := blockKinds[a]
	return k, ok
}

// ActionState is the menu status of one action.
type ActionState struct {
	Action  Action
	Enabled bool
	Active  bool
}

// State is the menu status of every action, in menu order.
type State struct {
	states []ActionState
}

// Get returns the status of one action.
func (s State) Get(a Action) ActionState {
	for _, st := range s.states {
		if st.Action == a {
			return st
		}
	}
	return ActionState{Action: a}
}

// List returns all action states in menu order.
func (s State) List() []ActionState {
	out := make([]ActionState, len(s.states))
	copy(out, s.states)
	return out
}

// Active returns the actions currently toggled on.
func (s State) Active() []Action {
	var out []Action
	for _, st := range s.states {
		if st.Active {
			out = append(out, st.Action)
		}
	}
	return out
}

// Equal reports whether two states are identical.
func (s State) Equal(other State) bool {
	if len(s.states) != len(other.states) {
		return false
	}
	for i, st := range s.states {
		if st != other.states[i] {
			return false
		}
	}
	return true
}

// String returns a compact representation such as "bold* italic -link".
// Active actions carry a trailing star; disabled ones a leading dash.
func (s State) String() string {
	parts := make([]string, len(s.states))
	for i, st := range s.states {
		p := string(st.Action)
		if st.Active {
			p += "*"
		}
		if !st.Enabled {
			p = "-" + p
		}
		parts[i] = p
	}
	return strings.Join(parts, " ")
}

// Input gathers everything the menu depends on.
type Input struct {
	Doc       *dom.Document
	Selection selection.Selection
	Pending   dom.Format
	CanUndo   bool
	CanRedo   bool
}

// Compute derives the menu state. It never mutates its input.
func Compute(in Input) State {
	start, end := in.Selection.Start(), in.Selection.End()

	var touched []dom.BlockKind
	for _, i := range in.Doc.BlocksIn(start, end) {
		touched = append(touched, in.Doc.Block(i).Kind)
	}
	inCode := false
	for _, k := range touched {
		if k == dom.CodeBlock {
			inCode = true
		}
	}

	var formats dom.Format
	if in.Selection.IsCaret() {
		formats = in.Doc.StyleAt(start).Formats ^ in.Pending
	} else {
		formats = in.Doc.FormatsIn(start, end)
	}

	states := make([]ActionState, 0, len(All))
	for _, a := range All {
		st := ActionState{Action: a, Enabled: true}
		switch a {
		case Bold, Italic, StrikeThrough, Underline, InlineCode:
			st.Enabled = !inCode
			st.Active = st.Enabled && formats.Has(inlineFormats[a])
		case Link:
			st.Enabled = !inCode
			st.Active = st.Enabled && linkActive(in.Doc, start, end)
		case CodeBlock:
			st.Active = allKind(touched, dom.CodeBlock)
		case Quote, OrderedList, UnorderedList:
			st.Enabled = !inCode
			st.Active = st.Enabled && allKind(touched, blockKinds[a])
		case Undo:
			st.Enabled = in.CanUndo
		case Redo:
			st.Enabled = in.CanRedo
		default:
			panic(fmt.Sprintf("menu: unhandled action %q", a))
		}
		states = append(states, st)
	}
	return State{states: states}
}

func linkActive(doc *dom.Document, start, end int) bool {
	if start == end {
		if start == 0 {
			return false
		}
		start--
	}
	_, ok := doc.LinkIn(start, end)
	return ok
}

func allKind(kinds []dom.BlockKind, want dom.BlockKind) bool {
	if len(kinds) == 0 {
		return false
	}
	for _, k := range kinds {
		if k != want {
			return false
		}
	}
	return true
}
