package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/dshills/wysiwyg/internal/composer/dom"
	"github.com/dshills/wysiwyg/internal/composer/menu"
	"github.com/dshills/wysiwyg/internal/composer/selection"
)

func TestBold_HelloScenario(t *testing.T) {
	m := newTestModel(t)

	ok(t)(m.ReplaceText("Hello"))
	assert.Equal(t, "Hello", m.Text())
	assert.Equal(t, selection.Caret(5), m.Selection())

	ok(t)(m.Select(0, 5))
	u := ok(t)(m.Bold())
	assert.True(t, u.MenuState().Get(menu.Bold).Active)
	assert.True(t, u.MenuState().Get(menu.Bold).Enabled)

	dump := m.DumpState()
	runs := gjson.Get(dump, "blocks.0.runs").Array()
	require.Len(t, runs, 1)
	assert.Equal(t, "Hello", runs[0].Get("text").String())
	assert.Equal(t, `["bold"]`, runs[0].Get("formats").Raw)
}

func TestBold_RendersStrong(t *testing.T) {
	m := newTestModel(t, WithContent("This is bold text"))
	ok(t)(m.Select(8, 12))

	r := replaced(t, ok(t)(m.Bold()))
	assert.Equal(t, "This is <strong>bold</strong> text", r.HTML)
	assert.Equal(t, 8, r.Start)
	assert.Equal(t, 12, r.End)
}

func TestBold_TwiceRestoresDocument(t *testing.T) {
	m := newTestModel(t, WithContent("one two\nthree"))
	ok(t)(m.Select(2, 10))
	before := m.Document()
	beforeMenu := m.MenuState()

	ok(t)(m.Bold())
	assert.False(t, before.Equal(m.Document()))

	u := ok(t)(m.Bold())
	assert.True(t, before.Equal(m.Document()))
	assert.Equal(t, beforeMenu.Get(menu.Bold), u.MenuState().Get(menu.Bold))
}

func TestToggle_PartialOverlap(t *testing.T) {
	m := newTestModel(t, WithContent("abcdef"))

	ok(t)(m.Select(1, 3))
	ok(t)(m.Bold())
	ok(t)(m.Select(2, 5))
	ok(t)(m.Bold())
	assert.Equal(t, "a<strong>bcde</strong>f", m.GetContentAsHTML())

	ok(t)(m.Select(2, 4))
	u := ok(t)(m.Bold())
	assert.Equal(t, "a<strong>b</strong>cd<strong>e</strong>f", m.GetContentAsHTML())
	assert.False(t, u.MenuState().Get(menu.Bold).Active)
	require.NoError(t, m.Document().Validate())
}

func TestToggle_NestedFormats(t *testing.T) {
	m := newTestModel(t, WithContent("x"))
	ok(t)(m.Select(0, 1))
	ok(t)(m.Italic())
	u := ok(t)(m.Bold())

	assert.Equal(t, "<strong><em>x</em></strong>", m.GetContentAsHTML())
	assert.ElementsMatch(t, []menu.Action{menu.Bold, menu.Italic}, u.MenuState().Active())
}

func TestInlineFormats(t *testing.T) {
	tests := []struct {
		name string
		run  func(*Model) (Update, error)
		want string
	}{
		{"italic", (*Model).Italic, "<em>go</em>"},
		{"strike through", (*Model).StrikeThrough, "<del>go</del>"},
		{"underline", (*Model).Underline, "<u>go</u>"},
		{"inline code", (*Model).InlineCode, "<code>go</code>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, WithContent("go"))
			ok(t)(m.Select(0, 2))
			ok(t)(tt.run(m))
			assert.Equal(t, tt.want, m.GetContentAsHTML())
		})
	}
}

func TestBold_AtCaretArmsPendingFormat(t *testing.T) {
	m := newTestModel(t)

	u := ok(t)(m.Bold())
	requireKeep(t, u)
	assert.True(t, u.MenuState().Get(menu.Bold).Active)
	assert.Equal(t, dom.Bold, m.PendingFormats())
	assert.False(t, m.CanUndo())

	ok(t)(m.ReplaceText("x"))
	assert.Equal(t, "<strong>x</strong>", m.GetContentAsHTML())
	assert.Equal(t, dom.Format(0), m.PendingFormats())

	// Typing continues in the inherited style.
	ok(t)(m.ReplaceText("y"))
	assert.Equal(t, "<strong>xy</strong>", m.GetContentAsHTML())

	// Disarming at a bold caret types plain text.
	u = ok(t)(m.Bold())
	assert.False(t, u.MenuState().Get(menu.Bold).Active)
	ok(t)(m.ReplaceText("z"))
	assert.Equal(t, "<strong>xy</strong>z", m.GetContentAsHTML())
}

func TestPendingFormat_ClearedByMovingCaret(t *testing.T) {
	m := newTestModel(t, WithContent("ab"))
	ok(t)(m.Bold())
	require.Equal(t, dom.Bold, m.PendingFormats())

	// Selecting the same caret keeps the toggle armed.
	ok(t)(m.Select(2, 2))
	assert.Equal(t, dom.Bold, m.PendingFormats())

	u := ok(t)(m.Select(1, 1))
	assert.Equal(t, dom.Format(0), m.PendingFormats())
	assert.False(t, u.MenuState().Get(menu.Bold).Active)
}

func TestPendingFormat_ClearedByOtherEdits(t *testing.T) {
	m := newTestModel(t, WithContent("ab"))
	ok(t)(m.Italic())
	require.Equal(t, dom.Italic, m.PendingFormats())

	ok(t)(m.Backspace())
	assert.Equal(t, dom.Format(0), m.PendingFormats())
}

func TestFormatting_IsUndoable(t *testing.T) {
	m := newTestModel(t, WithContent("abc"))
	ok(t)(m.Select(0, 3))
	ok(t)(m.Underline())
	require.Equal(t, "<u>abc</u>", m.GetContentAsHTML())

	ok(t)(m.Undo())
	assert.Equal(t, "abc", m.GetContentAsHTML())
	assert.Equal(t, selection.New(0, 3), m.Selection())
}

func TestToggleFormat_SeparatorOnlyIsNoop(t *testing.T) {
	m := newTestModel(t, WithContent("Hello\nworld"))
	ok(t)(m.Select(5, 6))
	before := m.DumpState()

	u := ok(t)(m.Bold())
	requireKeep(t, u)
	assert.Equal(t, before, m.DumpState())
	assert.False(t, m.CanUndo())
}
