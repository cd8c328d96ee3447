package dom

import (
	"fmt"
	"strings"
)

// Format is a set of inline formats stored as bit flags.
type Format uint8

const (
	Bold Format = 1 << iota
	Italic
	StrikeThrough
	Underline
	InlineCode
)

// AllFormats lists the inline formats in rendering order.
var AllFormats = []Format{Bold, Italic, StrikeThrough, Underline, InlineCode}

var formatNames = map[Format]string{
	Bold:          "bold",
	Italic:        "italic",
	StrikeThrough: "strike_through",
	Underline:     "underline",
	InlineCode:    "inline_code",
}

// Has reports whether every format in f is present.
func (s Format) Has(f Format) bool {
	return s&f == f
}

// With returns s with f added.
func (s Format) With(f Format) Format {
	return s | f
}

// Without returns s with f removed.
func (s Format) Without(f Format) Format {
	return s &^ f
}

// Toggle returns s with f flipped.
func (s Format) Toggle(f Format) Format {
	return s ^ f
}

// List returns the individual formats contained in s.
func (s Format) List() []Format {
	var out []Format
	for _, f := range AllFormats {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Names returns the names of the formats contained in s.
func (s Format) Names() []string {
	list := s.List()
	names := make([]string, len(list))
	for i, f := range list {
		names[i] = formatNames[f]
	}
	return names
}

// String returns a human-readable representation of the format set.
func (s Format) String() string {
	if s == 0 {
		return "plain"
	}
	return strings.Join(s.Names(), "+")
}

// ParseFormat returns the single format with the given name.
func ParseFormat(name string) (Format, error) {
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown format %q", name)
}

// Style holds the inline attributes shared by every character of a run.
type Style struct {
	Formats Format
	Link    string // Empty when the run is not a link
}

// Equal reports whether two styles are identical.
func (s Style) Equal(other Style) bool {
	return s.Formats == other.Formats && s.Link == other.Link
}

// String returns a human-readable representation of the style.
func (s Style) String() string {
	if s.Link == "" {
		return s.Formats.String()
	}
	return fmt.Sprintf("%s link=%s", s.Formats, s.Link)
}

// BlockKind identifies the type of a block container.
type BlockKind uint8

const (
	Paragraph BlockKind = iota
	Quote
	CodeBlock
	OrderedListItem
	UnorderedListItem
)

var blockKindNames = []string{
	Paragraph:         "paragraph",
	Quote:             "quote",
	CodeBlock:         "code_block",
	OrderedListItem:   "ordered_list_item",
	UnorderedListItem: "unordered_list_item",
}

// String returns the name of the block kind.
func (k BlockKind) String() string {
	if int(k) < len(blockKindNames) {
		return blockKindNames[k]
	}
	return "unknown"
}

// IsListItem reports whether k is either kind of list item.
func (k BlockKind) IsListItem() bool {
	return k == OrderedListItem || k == UnorderedListItem
}

// ParseBlockKind returns the block kind with the given name.
func ParseBlockKind(name string) (BlockKind, error) {
	for i, n := range blockKindNames {
		if n == name {
			return BlockKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown block kind %q", name)
}
