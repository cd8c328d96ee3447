// Package action models formatting actions that need data from the host
// before they can complete, and the registry tracking them until they are
// answered or invalidated.
package action

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrInvalidResponse indicates a host response that does not match the
// payload its action expects.
var ErrInvalidResponse = errors.New("invalid action response")

// ID identifies a pending action for the lifetime of a composer.
type ID string

// Kind is the payload of a pending action. The set of kinds is closed:
// SetLink and SetLinkWithText are the only implementations.
type Kind interface {
	// Name returns the wire name of the kind.
	Name() string

	// Span returns the document range the action depends on.
	Span() (start, end int)

	withSpan(start, end int) Kind
}

// SetLink asks the host for a URL to apply to a non-empty range.
type SetLink struct {
	Start int
	End   int
}

// Name returns "set_link".
func (SetLink) Name() string { return "set_link" }

// Span returns the range the link will cover.
func (k SetLink) Span() (int, int) { return k.Start, k.End }

func (k SetLink) withSpan(start, end int) Kind { return SetLink{Start: start, End: end} }

// SetLinkWithText asks the host for both the text and the URL of a link
// inserted at a caret.
type SetLinkWithText struct {
	At int
}

// Name returns "set_link_with_text".
func (SetLinkWithText) Name() string { return "set_link_with_text" }

// Span returns the caret position as an empty range.
func (k SetLinkWithText) Span() (int, int) { return k.At, k.At }

func (k SetLinkWithText) withSpan(start, _ int) Kind { return SetLinkWithText{At: start} }

// Action is a ComposerAction: an identifier paired with its kind.
type Action struct {
	id   ID
	kind Kind
}

// ID returns the action identifier.
func (a Action) ID() ID {
	return a.id
}

// Kind returns the action payload.
func (a Action) Kind() Kind {
	return a.kind
}

// String returns a human-readable representation of the action.
func (a Action) String() string {
	start, end := a.kind.Span()
	return fmt.Sprintf("%s(%s [%d, %d))", a.kind.Name(), a.id, start, end)
}

// Response is the host's answer to a pending action.
type Response interface {
	isResponse()
}

// LinkResponse answers SetLink.
type LinkResponse struct {
	URL string
}

// LinkWithTextResponse answers SetLinkWithText.
type LinkWithTextResponse struct {
	URL  string
	Text string
}

func (LinkResponse) isResponse()         {}
func (LinkWithTextResponse) isResponse() {}

// ParseResponse decodes a JSON response for an action of the given kind.
//
//	set_link:           {"url": "https://example.org"}
//	set_link_with_text: {"url": "https://example.org", "text": "example"}
func ParseResponse(k Kind, data []byte) (Response, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s: malformed json", ErrInvalidResponse, k.Name())
	}
	url := gjson.GetBytes(data, "url")
	if url.Type != gjson.String || strings.TrimSpace(url.String()) == "" {
		return nil, fmt.Errorf("%w: %s: missing url", ErrInvalidResponse, k.Name())
	}

	switch k.(type) {
	case SetLink:
		return LinkResponse{URL: url.String()}, nil
	case SetLinkWithText:
		text := gjson.GetBytes(data, "text")
		if text.Type != gjson.String || text.String() == "" {
			return nil, fmt.Errorf("%w: %s: missing text", ErrInvalidResponse, k.Name())
		}
		return LinkWithTextResponse{URL: url.String(), Text: text.String()}, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %T", ErrInvalidResponse, k)
	}
}
