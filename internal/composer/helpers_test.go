package composer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/wysiwyg/internal/composer/action"
	"github.com/dshills/wysiwyg/internal/logging"
)

func newTestModel(t *testing.T, opts ...Option) *Model {
	t.Helper()
	base := []Option{
		WithLogger(logging.NewTestLogger(t)),
		WithIDGenerator(action.SequentialGenerator()),
	}
	return New(append(base, opts...)...)
}

// ok unwraps a command result, failing the test on error.
func ok(t *testing.T) func(Update, error) Update {
	return func(u Update, err error) Update {
		t.Helper()
		require.NoError(t, err)
		return u
	}
}

func replaced(t *testing.T, u Update) ReplaceAll {
	t.Helper()
	r, isReplace := u.TextUpdate().(ReplaceAll)
	require.True(t, isReplace, "expected ReplaceAll, got %v", u.TextUpdate())
	return r
}

func requireKeep(t *testing.T, u Update) {
	t.Helper()
	require.Equal(t, Keep{}, u.TextUpdate())
}
