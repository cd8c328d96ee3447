package dom

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrInvalidHTML indicates markup that could not be parsed.
var ErrInvalidHTML = errors.New("invalid html")

// ParseHTML builds a document from HTML markup. Unknown elements are
// transparent: their text is kept and their tags are dropped.
func ParseHTML(markup string) (*Document, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHTML, err)
	}

	p := &htmlParser{}
	for _, n := range nodes {
		p.walk(n, Style{}, Paragraph)
	}

	d := NewFromBlocks(p.blocks...)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

type htmlParser struct {
	blocks []*Block
	cur    *Block
}

func (p *htmlParser) open(kind BlockKind) {
	p.cur = &Block{Kind: kind}
	p.blocks = append(p.blocks, p.cur)
}

func (p *htmlParser) close() {
	p.cur = nil
}

func (p *htmlParser) text(s string, style Style, kind BlockKind) {
	if kind != CodeBlock {
		if p.cur == nil && strings.TrimSpace(s) == "" {
			return
		}
		s = strings.ReplaceAll(s, "\n", " ")
	}
	for i, line := range strings.Split(s, "\n") {
		if i > 0 || p.cur == nil {
			p.open(kind)
		}
		p.cur.Runs = append(p.cur.Runs, Run{Text: line, Style: style})
	}
}

// block parses the children of n as the content of one or more blocks
// of the given kind. With keepEmpty, an element without text still
// produces an empty block.
func (p *htmlParser) block(n *html.Node, style Style, kind BlockKind, keepEmpty bool) {
	p.close()
	count := len(p.blocks)
	p.children(n, style, kind)
	if keepEmpty && len(p.blocks) == count {
		p.open(kind)
	}
	p.close()
}

func (p *htmlParser) children(n *html.Node, style Style, kind BlockKind) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c, style, kind)
	}
}

func (p *htmlParser) walk(n *html.Node, style Style, kind BlockKind) {
	switch n.Type {
	case html.TextNode:
		p.text(n.Data, style, kind)
		return
	case html.ElementNode:
	default:
		p.children(n, style, kind)
		return
	}

	switch n.DataAtom {
	case atom.Strong, atom.B:
		style.Formats = style.Formats.With(Bold)
	case atom.Em, atom.I:
		style.Formats = style.Formats.With(Italic)
	case atom.Del, atom.S, atom.Strike:
		style.Formats = style.Formats.With(StrikeThrough)
	case atom.U:
		style.Formats = style.Formats.With(Underline)
	case atom.Code:
		if kind != CodeBlock {
			style.Formats = style.Formats.With(InlineCode)
		}
	case atom.A:
		style.Link = attr(n, "href")
	case atom.P, atom.Div:
		p.block(n, style, kind, true)
		return
	case atom.Blockquote:
		p.block(n, style, Quote, true)
		return
	case atom.Pre:
		p.block(n, style, CodeBlock, true)
		return
	case atom.Ol:
		p.block(n, style, OrderedListItem, false)
		return
	case atom.Ul:
		p.block(n, style, UnorderedListItem, false)
		return
	case atom.Li:
		if !kind.IsListItem() {
			kind = UnorderedListItem
		}
		p.block(n, style, kind, true)
		return
	case atom.Br:
		if p.cur == nil {
			p.open(kind)
		}
		p.open(kind)
		return
	}
	p.children(n, style, kind)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
