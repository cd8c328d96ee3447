package composer

import (
	"fmt"

	"github.com/dshills/wysiwyg/internal/composer/action"
	"github.com/dshills/wysiwyg/internal/composer/dom"
	"github.com/dshills/wysiwyg/internal/composer/menu"
	"github.com/dshills/wysiwyg/internal/composer/selection"
)

var linkKinds = []string{
	action.SetLink{}.Name(),
	action.SetLinkWithText{}.Name(),
}

// SetLink asks the host for a link. Over a selection the returned action
// is a SetLink covering it; at a caret it is a SetLinkWithText asking for
// the link text too. An outstanding link request is cancelled.
// The document does not change until ActionResponse is called.
func (m *Model) SetLink() (Update, error) {
	if !m.MenuState().Get(menu.Link).Enabled {
		return Update{}, fmt.Errorf("%w: %s is disabled here", ErrInvalidCommand, menu.Link)
	}

	t := m.begin("SetLink")
	if dropped := t.actions.CancelKind(linkKinds...); len(dropped) > 0 {
		m.logger.Debug("link request superseded", "actions", dropped)
	}

	sel := t.sel.Selection()
	var kind action.Kind
	if sel.IsCaret() {
		kind = action.SetLinkWithText{At: sel.Focus}
	} else {
		kind = action.SetLink{Start: sel.Start(), End: sel.End()}
	}
	created := t.actions.Register(kind)

	if err := m.commit(t); err != nil {
		return Update{}, err
	}
	return m.keep(created), nil
}

// CancelAction drops a pending action. Unknown identifiers are ignored.
func (m *Model) CancelAction(id action.ID) Update {
	if m.actions.Cancel(id) {
		m.logger.Debug("action cancelled", "action", id)
	}
	return m.keep()
}

// ActionResponse completes a pending action with the host's JSON
// response. Unknown, consumed or invalidated identifiers are stale
// callbacks: nothing changes and the current state is returned. A
// response that does not fit the action fails with ErrInvalidCommand
// and the action stays pending. If the selection still matches the
// action's span the caret moves to the end of the linked text.
func (m *Model) ActionResponse(id action.ID, response []byte) (Update, error) {
	a, ok := m.actions.Lookup(id)
	if !ok {
		m.logger.Debug("stale action response", "action", id)
		return m.keep(), nil
	}

	resp, err := action.ParseResponse(a.Kind(), response)
	if err != nil {
		return Update{}, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}

	t := m.begin("ActionResponse")
	t.actions.Take(id)

	start, end := a.Kind().Span()
	if err := checkRange(t.doc, start, end); err != nil {
		return Update{}, fmt.Errorf("%w: action %s: %w", ErrInternal, id, err)
	}

	// The caret follows the link only while the selection still matches
	// the action's span; otherwise the user's selection is kept.
	sel := t.sel.Selection()
	onSpan := sel.Start() == start && sel.End() == end

	switch r := resp.(type) {
	case action.LinkResponse:
		if err := t.doc.SetLink(start, end, r.URL); err != nil {
			return Update{}, fmt.Errorf("set link: %w", err)
		}
		t.record = true
		if onSpan {
			t.sel.Set(selection.Caret(end))
		}
	case action.LinkWithTextResponse:
		style := dom.Style{Formats: t.doc.StyleAt(start).Formats, Link: r.URL}
		e, err := t.replace(start, start, r.Text, style)
		if err != nil {
			return Update{}, fmt.Errorf("set link with text: %w", err)
		}
		if onSpan {
			t.sel.Set(selection.Caret(e.Start + e.NewLen))
		}
	default:
		return Update{}, fmt.Errorf("%w: unexpected response %T", ErrInternal, resp)
	}
	t.sel.ClearPending()

	m.logger.Debug("action completed", "action", a.String())
	return m.finish(t)
}
