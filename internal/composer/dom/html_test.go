package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTML(t *testing.T) {
	tests := []struct {
		name string
		doc  *Document
		want string
	}{
		{"empty", New(), ""},
		{
			"single paragraph is bare",
			NewFromBlocks(NewBlock(Paragraph, plain("This is "), styled("bold", Bold), plain(" text"))),
			"This is <strong>bold</strong> text",
		},
		{"escaping", NewFromText(`a<b>&"c"`), "a&lt;b&gt;&amp;&#34;c&#34;"},
		{"paragraphs", NewFromText("a\nb"), "<p>a</p><p>b</p>"},
		{
			"nested formats",
			NewFromBlocks(NewBlock(Paragraph, styled("x", Bold|Italic|StrikeThrough|Underline|InlineCode))),
			"<strong><em><del><u><code>x</code></u></del></em></strong>",
		},
		{
			"link outside formats",
			NewFromBlocks(NewBlock(Paragraph, Run{Text: "go", Style: Style{Formats: Bold, Link: "https://go.dev/?a=1&b=2"}})),
			`<a href="https://go.dev/?a=1&amp;b=2"><strong>go</strong></a>`,
		},
		{
			"lists group consecutive items",
			NewFromBlocks(
				NewBlock(OrderedListItem, plain("1")),
				NewBlock(OrderedListItem, plain("2")),
				NewBlock(UnorderedListItem, plain("x")),
				NewBlock(Paragraph, plain("end")),
			),
			"<ol><li>1</li><li>2</li></ol><ul><li>x</li></ul><p>end</p>",
		},
		{
			"quote and code",
			NewFromBlocks(NewBlock(Quote, plain("q")), NewBlock(CodeBlock, plain("a < b"))),
			"<blockquote>q</blockquote><pre><code>a &lt; b</code></pre>",
		},
		{"lone quote", NewFromBlocks(NewBlock(Quote, plain("q"))), "<blockquote>q</blockquote>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.doc.HTML())
		})
	}
}

func TestParseHTML(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		text   string
		html   string
	}{
		{"empty", "", "", ""},
		{"inline only", "This is <b>bold</b> text", "This is bold text", "This is <strong>bold</strong> text"},
		{"paragraphs", "<p>a</p>\n<p>b</p>", "a\nb", "<p>a</p><p>b</p>"},
		{"empty paragraph", "<p>a</p><p></p>", "a\n", "<p>a</p><p></p>"},
		{"line break", "a<br>b", "a\nb", "<p>a</p><p>b</p>"},
		{"unknown elements are transparent", "<span>a<i>b</i></span>", "ab", "a<em>b</em>"},
		{"aliases", "<s>x</s><strike>y</strike><del>z</del>", "xyz", "<del>xyz</del>"},
		{"inline code", "use <code>go</code>", "use go", "use <code>go</code>"},
		{"code block", "<pre><code>x := 1</code></pre>", "x := 1", "<pre><code>x := 1</code></pre>"},
		{"quote", "<blockquote>q</blockquote>", "q", "<blockquote>q</blockquote>"},
		{"lists", "<ol><li>a</li><li>b</li></ol><ul><li>c</li></ul>", "a\nb\nc", "<ol><li>a</li><li>b</li></ol><ul><li>c</li></ul>"},
		{"link", `<a href="https://example.org">x</a>`, "x", `<a href="https://example.org">x</a>`},
		{"entities", "a &amp; b", "a & b", "a &amp; b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseHTML(tt.markup)
			require.NoError(t, err)
			require.NoError(t, d.Validate())
			assert.Equal(t, tt.text, d.Text())
			assert.Equal(t, tt.html, d.HTML())
		})
	}
}

func TestParseHTML_RoundTrip(t *testing.T) {
	d := NewFromBlocks(
		NewBlock(Paragraph, plain("Hi "), styled("there", Bold|Italic)),
		NewBlock(Quote, Run{Text: "quoted", Style: Style{Link: "https://example.org"}}),
		NewBlock(UnorderedListItem, styled("item", Underline)),
		NewBlock(CodeBlock, plain("if a < b {")),
	)

	parsed, err := ParseHTML(d.HTML())
	require.NoError(t, err)
	assert.True(t, d.Equal(parsed), "got\n%s", parsed.Tree())
}

func TestTree(t *testing.T) {
	d := NewFromBlocks(
		NewBlock(Paragraph, plain("Hello "), styled("world", Bold)),
		NewBlock(OrderedListItem),
		NewBlock(Quote, Run{Text: "q", Style: Style{Link: "u"}}),
	)

	want := "root\n" +
		"├>paragraph\n" +
		"│ ├>\"Hello \"\n" +
		"│ └>\"world\" [bold]\n" +
		"├>ordered_list_item\n" +
		"└>quote\n" +
		"  └>\"q\" [plain link=u]\n"
	assert.Equal(t, want, d.Tree())
}
