package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/wysiwyg/internal/composer"
	"github.com/dshills/wysiwyg/internal/logging"
)

// isolate keeps the user's own configuration out of a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvConfigFile, "")
	for _, key := range []string{"LOG_LEVEL", "LOG_FORMAT", "MAX_UNDO", "ACTION_IDS", "OUTPUT", "HISTORY_FILE"} {
		t.Setenv(EnvPrefix+key, "")
		os.Unsetenv(EnvPrefix + key)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("log-level", DefaultLogLevel, "")
	fs.String("output", DefaultOutput, "")
	fs.Int("max-undo", DefaultMaxUndo, "")
	fs.String("config", "", "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	res, err := Load("", nil)
	require.NoError(t, err)
	assert.Empty(t, res.File)
	assert.Equal(t, Default(), res.Config)
}

func TestLoadYAML(t *testing.T) {
	isolate(t)
	path := writeFile(t, "wysiwyg.yaml", "log_level: DEBUG\nmax_undo: 25\naction_ids: sequential\n")

	res, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, res.File)
	assert.Equal(t, "debug", res.LogLevel)
	assert.Equal(t, 25, res.MaxUndo)
	assert.Equal(t, ActionIDsSequential, res.ActionIDs)
	assert.Equal(t, DefaultOutput, res.Output)
}

func TestLoadTOML(t *testing.T) {
	isolate(t)
	path := writeFile(t, "wysiwyg.toml", "log_format = \"json\"\noutput = \"markdown\"\nmax_undo = 7\n")

	res, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "json", res.LogFormat)
	assert.Equal(t, OutputMarkdown, res.Output)
	assert.Equal(t, 7, res.MaxUndo)
}

func TestLoadTOMLParseError(t *testing.T) {
	isolate(t)
	path := writeFile(t, "bad.toml", "max_undo = 7\noutput = \n")

	_, err := Load(path, nil)
	require.Error(t, err)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, path, perr.Path)
	assert.Equal(t, 2, perr.Line)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoadConfigFileFromEnv(t *testing.T) {
	isolate(t)
	path := writeFile(t, "custom.yml", "output: html\n")
	t.Setenv(EnvConfigFile, path)

	res, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, path, res.File)
	assert.Equal(t, OutputHTML, res.Output)
}

func TestLoadUserConfigDir(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "wysiwyg"), 0o755))
	path := filepath.Join(dir, "wysiwyg", "wysiwyg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_undo: 3\n"), 0o644))

	res, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, path, res.File)
	assert.Equal(t, 3, res.MaxUndo)
}

func TestLoadPrecedence(t *testing.T) {
	isolate(t)
	path := writeFile(t, "wysiwyg.yaml", "log_level: warn\noutput: html\nmax_undo: 10\n")
	t.Setenv("WYSIWYG_OUTPUT", "json")
	t.Setenv("WYSIWYG_MAX_UNDO", "20")
	t.Setenv("WYSIWYG_UNRELATED", "ignored")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--max-undo", "30", "--config", path}))

	res, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "warn", res.LogLevel, "file beats defaults")
	assert.Equal(t, OutputJSON, res.Output, "env beats file")
	assert.Equal(t, 30, res.MaxUndo, "flags beat env")
}

func TestLoadUnchangedFlagsIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("WYSIWYG_OUTPUT", "markdown")

	fs := testFlags()
	require.NoError(t, fs.Parse(nil))

	res, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, OutputMarkdown, res.Output)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		key     string
	}{
		{"level", "log_level: loud\n", "log_level"},
		{"format", "log_format: xml\n", "log_format"},
		{"undo", "max_undo: -1\n", "max_undo"},
		{"ids", "action_ids: random\n", "action_ids"},
		{"output", "output: pdf\n", "output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := writeFile(t, "wysiwyg.yaml", tt.content)

			_, err := Load(path, nil)
			require.ErrorIs(t, err, ErrValidationFailed)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.key, verr.Key)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestLoggerConfig(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "debug"
	cfg.LogFormat = "json"

	var sb strings.Builder
	lc := cfg.LoggerConfig(&sb)
	assert.Equal(t, slog.LevelDebug, lc.Level)
	assert.Equal(t, logging.FormatJSON, lc.Format)

	logging.New(lc).Debug("hello")
	assert.Contains(t, sb.String(), `"msg":"hello"`)
}

func TestComposerOptions(t *testing.T) {
	cfg := Default()
	cfg.ActionIDs = ActionIDsSequential
	cfg.MaxUndo = 1

	m := composer.New(append(cfg.ComposerOptions(logging.NewTestLogger(t)), composer.WithContent("ab"))...)

	_, err := m.Select(0, 2)
	require.NoError(t, err)
	u, err := m.SetLink()
	require.NoError(t, err)
	require.Len(t, u.Actions(), 1)
	assert.Equal(t, "act-1", string(u.Actions()[0].ID()))

	_, err = m.Bold()
	require.NoError(t, err)
	_, err = m.Italic()
	require.NoError(t, err)
	_, err = m.Undo()
	require.NoError(t, err)
	assert.False(t, m.CanUndo(), "max_undo bounds the history")
}

func TestIDGeneratorDefaultsToUUID(t *testing.T) {
	id := Default().IDGenerator()()
	assert.Len(t, string(id), 36)
}
