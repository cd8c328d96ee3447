package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/dshills/wysiwyg/internal/composer/dom"
	"github.com/dshills/wysiwyg/internal/composer/selection"
)

func TestDumpState_Empty(t *testing.T) {
	m := newTestModel(t)

	dump := m.DumpState()
	require.True(t, gjson.Valid(dump))
	assert.Equal(t, int64(0), gjson.Get(dump, "selection.anchor").Int())
	assert.Equal(t, `[]`, gjson.Get(dump, "pending_formats").Raw)
	assert.Equal(t, "paragraph", gjson.Get(dump, "blocks.0.kind").String())
	assert.Equal(t, `[]`, gjson.Get(dump, "blocks.0.runs").Raw)
	assert.Equal(t, int64(1), gjson.Get(dump, "blocks.#").Int())
}

func TestDumpState_Content(t *testing.T) {
	m := newTestModel(t)
	ok(t)(m.SetContentFromHTML(`<p>a <a href="https://x.example">"b"</a></p><blockquote><em>q</em></blockquote>`))
	ok(t)(m.Select(2, 0))

	dump := m.DumpState()
	assert.Equal(t, int64(2), gjson.Get(dump, "selection.anchor").Int())
	assert.Equal(t, int64(0), gjson.Get(dump, "selection.focus").Int())
	assert.Equal(t, "a ", gjson.Get(dump, "blocks.0.runs.0.text").String())
	assert.False(t, gjson.Get(dump, "blocks.0.runs.0.link").Exists())
	assert.Equal(t, `"b"`, gjson.Get(dump, "blocks.0.runs.1.text").String())
	assert.Equal(t, "https://x.example", gjson.Get(dump, "blocks.0.runs.1.link").String())
	assert.Equal(t, "quote", gjson.Get(dump, "blocks.1.kind").String())
	assert.Equal(t, `["italic"]`, gjson.Get(dump, "blocks.1.runs.0.formats").Raw)
}

func TestNewFromState_RoundTrip(t *testing.T) {
	m := newTestModel(t, WithContent("Hello\nworld"))
	ok(t)(m.Select(0, 5))
	ok(t)(m.Bold())
	ok(t)(m.Select(6, 11))
	ok(t)(m.UnorderedList())
	ok(t)(m.Select(11, 11))
	ok(t)(m.Italic())
	dump := m.DumpState()

	restored, err := NewFromState(dump, WithLogger(m.logger))
	require.NoError(t, err)
	assert.Equal(t, dump, restored.DumpState())
	assert.True(t, m.Document().Equal(restored.Document()))
	assert.Equal(t, selection.Caret(11), restored.Selection())
	assert.Equal(t, dom.Italic, restored.PendingFormats())
	assert.Equal(t, m.GetContentAsHTML(), restored.GetContentAsHTML())
	assert.False(t, restored.CanUndo())
}

func TestNewFromState_Invalid(t *testing.T) {
	tests := []struct {
		name string
		dump string
	}{
		{"not json", `{"blocks":`},
		{"no blocks", `{"selection":{"anchor":0,"focus":0}}`},
		{"unknown kind", `{"blocks":[{"kind":"table","runs":[]}]}`},
		{"unknown format", `{"blocks":[{"kind":"paragraph","runs":[{"text":"a","formats":["blink"]}]}]}`},
		{"newline in run", `{"blocks":[{"kind":"paragraph","runs":[{"text":"a\nb","formats":[]}]}]}`},
		{"selection out of range", `{"selection":{"anchor":0,"focus":4},"blocks":[{"kind":"paragraph","runs":[{"text":"abc","formats":[]}]}]}`},
		{"unknown pending format", `{"pending_formats":["blink"],"blocks":[{"kind":"paragraph","runs":[]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFromState(tt.dump)
			assert.ErrorIs(t, err, ErrInvalidState)
		})
	}
}

func TestSetContentFromHTML(t *testing.T) {
	m := newTestModel(t)
	markup := "<p>Hi <strong>there</strong></p><ul><li>a</li><li>b</li></ul>"

	r := replaced(t, ok(t)(m.SetContentFromHTML(markup)))
	assert.Equal(t, markup, r.HTML)
	assert.Equal(t, "Hi there\na\nb", m.Text())
	assert.Equal(t, selection.Caret(12), m.Selection())

	ok(t)(m.Undo())
	assert.Equal(t, "", m.Text())
}

func TestGetContentAsMarkdown(t *testing.T) {
	m := newTestModel(t, WithContent("This is bold text"))
	ok(t)(m.Select(8, 12))
	ok(t)(m.Bold())

	md, err := m.GetContentAsMarkdown()
	require.NoError(t, err)
	assert.Contains(t, md, "This is **bold** text")
}

func TestReplaceAll_CodeUnits(t *testing.T) {
	r := ReplaceAll{HTML: "é👍"}
	assert.Equal(t, []uint16{0xe9, 0xd83d, 0xdc4d}, r.CodeUnits())
}
