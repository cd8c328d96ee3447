package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/wysiwyg/internal/composer"
	"github.com/dshills/wysiwyg/internal/composer/action"
	"github.com/dshills/wysiwyg/internal/config"
	"github.com/dshills/wysiwyg/internal/logging"
)

// execute runs cmd with args under an environment using output format
// out and returns what it wrote to stdout. Like the root command, it
// leaves error reporting to the caller.
func execute(t *testing.T, cmd *cobra.Command, out string, args ...string) (string, error) {
	t.Helper()
	cfg := config.Default()
	cfg.Output = out
	cfg.ActionIDs = config.ActionIDsSequential
	cmd.SetContext(WithEnv(t.Context(), &Env{Config: cfg, Logger: logging.NewTestLogger(t)}))
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if stderr.Len() > 0 {
		t.Logf("stderr:\n%s", stderr)
	}
	return stdout.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, NewVersionCommand("1.2.3", "abc123"), config.OutputTable)
	require.NoError(t, err)
	assert.Contains(t, out, "wysiwyg v1.2.3 (abc123)")
}

func TestConvertCommand(t *testing.T) {
	path := writeTemp(t, "in.html", "<p>This is <b>bold</b> text</p>")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"markdown", []string{"--to", "markdown", path}, "This is **bold** text"},
		{"html", []string{"--to", "html", path}, "This is <strong>bold</strong> text\n"},
		{"tree", []string{"--to", "tree", path}, "root\n└>paragraph\n"},
		{"default output", []string{path}, "<strong>bold</strong>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewConvertCommand(), config.OutputHTML, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestConvertJSON(t *testing.T) {
	path := writeTemp(t, "in.html", "<ul><li>a</li><li>b</li></ul>")

	out, err := execute(t, NewConvertCommand(), config.OutputTable, "--to", "json", path)
	require.NoError(t, err)

	var got modelOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "a\nb", got.Text)
	assert.Equal(t, [2]int{3, 3}, got.Selection)
	assert.Len(t, got.Menu, 12)
	assert.Contains(t, string(got.State), `"unordered_list_item"`)
}

func TestConvertStdin(t *testing.T) {
	cmd := NewConvertCommand()
	cmd.SetIn(strings.NewReader("<blockquote>quoted</blockquote>"))
	out, err := execute(t, cmd, config.OutputTable, "--to", "html", "-")
	require.NoError(t, err)
	assert.Equal(t, "<blockquote>quoted</blockquote>\n", out)
}

func TestConvertMissingFile(t *testing.T) {
	_, err := execute(t, NewConvertCommand(), config.OutputTable, filepath.Join(t.TempDir(), "nope.html"))
	assert.Error(t, err)
}

func TestReplayFixtures(t *testing.T) {
	out, err := execute(t, NewReplayCommand(), config.OutputTable, filepath.Join("..", "..", "scenario", "testdata"))
	require.NoError(t, err, out)
	assert.Contains(t, out, "PASS")
	assert.NotContains(t, out, "FAIL")
}

func TestReplayFailure(t *testing.T) {
	path := writeTemp(t, "bad.yaml", `
name: wrong text
content: abc
steps:
  - command: backspace
    expect:
      text: abc
`)

	out, err := execute(t, NewReplayCommand(), config.OutputJSON, path)
	require.Error(t, err)
	assert.NotContains(t, out, "Usage:")
	assert.Contains(t, err.Error(), "1 of 1 scenario(s) failed")

	var entries []resultEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Passed)
	assert.Equal(t, []string{`step 1 (backspace): text: want "abc", got "ab"`}, entries[0].Failures)
}

func TestReplayEmptyDir(t *testing.T) {
	_, err := execute(t, NewReplayCommand(), config.OutputTable, t.TempDir())
	assert.ErrorContains(t, err, "no scenarios found")
}

func TestScriptCommand(t *testing.T) {
	path := writeTemp(t, "edit.lua", `
wysiwyg.select(0, 5)
wysiwyg.bold()
print("done")
`)

	out, err := execute(t, NewScriptCommand(), config.OutputHTML, "--content", "Hello world", path)
	require.NoError(t, err)
	assert.Equal(t, "done\n<strong>Hello</strong> world\n", out)
}

func TestScriptCommandInitialHTML(t *testing.T) {
	html := writeTemp(t, "in.html", "<p>one</p><p>two</p>")
	path := writeTemp(t, "edit.lua", `wysiwyg.select(0, 7) wysiwyg.quote()`)

	out, err := execute(t, NewScriptCommand(), config.OutputMarkdown, "--html", html, path)
	require.NoError(t, err)
	assert.Contains(t, out, "> one")
}

func TestScriptCommandError(t *testing.T) {
	path := writeTemp(t, "bad.lua", `wysiwyg.select(0, 99)`)

	_, err := execute(t, NewScriptCommand(), config.OutputTable, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "select")
}

func TestScriptTableOutput(t *testing.T) {
	path := writeTemp(t, "link.lua", `wysiwyg.select(0, 2) wysiwyg.set_link()`)

	out, err := execute(t, NewScriptCommand(), config.OutputTable, "--content", "hi", path)
	require.NoError(t, err)
	assert.Contains(t, out, "act-1")
	assert.Contains(t, out, "set_link")
	assert.Contains(t, out, "ACTION")
	assert.Contains(t, out, "strike_through")
}

func newTestSession(t *testing.T, content string) (*session, *bytes.Buffer) {
	t.Helper()
	buf := new(bytes.Buffer)
	m := composer.New(
		composer.WithLogger(logging.NewTestLogger(t)),
		composer.WithIDGenerator(action.SequentialGenerator()),
		composer.WithContent(content),
	)
	return newSession(m, buf), buf
}

func TestSessionEditing(t *testing.T) {
	s, buf := newTestSession(t, "")

	for _, line := range []string{"type Hello world", "select 0 5", "bold"} {
		quit, err := s.exec(line)
		require.NoError(t, err, line)
		require.False(t, quit)
	}
	assert.Equal(t, "<strong>Hello</strong> world", s.m.GetContentAsHTML())
	assert.Contains(t, buf.String(), `ReplaceAll("<strong>Hello</strong> world", 0, 5)`)
	assert.Contains(t, buf.String(), "bold*")

	_, err := s.exec("replace 6 11 there")
	require.NoError(t, err)
	assert.Equal(t, "Hello there", s.m.Text())

	_, err = s.exec("delete_in 5 11")
	require.NoError(t, err)
	assert.Equal(t, "Hello", s.m.Text())

	_, err = s.exec("undo")
	require.NoError(t, err)
	assert.Equal(t, "Hello there", s.m.Text())
}

func TestSessionLinks(t *testing.T) {
	s, buf := newTestSession(t, "docs")

	_, err := s.exec("select 0 4")
	require.NoError(t, err)
	_, err = s.exec("link")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "+set_link(act-1 [0, 4))")

	_, err = s.exec("actions")
	require.NoError(t, err)

	_, err = s.exec(`respond act-1 {"url": "https://example.org"}`)
	require.NoError(t, err)
	assert.Equal(t, `<a href="https://example.org">docs</a>`, s.m.GetContentAsHTML())

	_, err = s.exec("cancel act-1")
	require.NoError(t, err, "cancelling a consumed action is harmless")
}

func TestSessionQueriesAndErrors(t *testing.T) {
	s, buf := newTestSession(t, "ab")

	for _, line := range []string{"text", "html", "markdown", "tree", "dump", "menu", "help", "", "load <p>x</p>"} {
		_, err := s.exec(line)
		require.NoError(t, err, line)
	}
	out := buf.String()
	assert.Contains(t, out, `"ab"`)
	assert.Contains(t, out, `"selection":{"anchor":2,"focus":2}`)
	assert.Contains(t, out, "type <text>")
	assert.Equal(t, "x", s.m.Text())

	_, err := s.exec("frobnicate")
	assert.ErrorContains(t, err, "unknown command")

	_, err = s.exec("select 1")
	assert.ErrorContains(t, err, "expected 2 offsets")

	_, err = s.exec("select 0 9")
	assert.ErrorIs(t, err, composer.ErrRange)

	_, err = s.exec("respond")
	assert.Error(t, err)

	quit, err := s.exec("QUIT")
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestInts(t *testing.T) {
	n, rest, err := ints("3  7 some text", 2)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 7}, n)
	assert.Equal(t, "some text", rest)

	_, _, err = ints("a b", 2)
	assert.Error(t, err)
}

func TestEnvFromDefaults(t *testing.T) {
	env := EnvFrom(t.Context())
	assert.Equal(t, config.Default(), env.Config)
	assert.NotNil(t, env.NewModel())
}
