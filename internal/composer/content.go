package composer

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/dshills/wysiwyg/internal/composer/dom"
	"github.com/dshills/wysiwyg/internal/composer/selection"
)

// SetContentFromHTML replaces the whole document with parsed markup and
// places the caret at the end. The change can be undone.
func (m *Model) SetContentFromHTML(markup string) (Update, error) {
	doc, err := dom.ParseHTML(markup)
	if err != nil {
		return Update{}, fmt.Errorf("set content: %w", err)
	}

	t := m.begin("SetContentFromHTML")
	t.doc = doc
	t.sel.Set(selection.Caret(doc.Len()))
	t.sel.ClearPending()
	t.actions.Clear()
	t.record = true
	return m.finish(t)
}

// GetContentAsHTML renders the document as HTML.
func (m *Model) GetContentAsHTML() string {
	return m.doc.HTML()
}

// GetContentAsMarkdown renders the document as Markdown.
func (m *Model) GetContentAsMarkdown() (string, error) {
	md, err := htmltomarkdown.ConvertString(m.doc.HTML())
	if err != nil {
		return "", fmt.Errorf("convert to markdown: %w", err)
	}
	return md, nil
}
