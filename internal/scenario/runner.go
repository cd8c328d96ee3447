package scenario

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/dshills/wysiwyg/internal/composer"
	"github.com/dshills/wysiwyg/internal/composer/action"
	"github.com/dshills/wysiwyg/internal/composer/menu"
	"github.com/dshills/wysiwyg/internal/logging"
)

// Failure is one unmet expectation.
type Failure struct {
	Step      int
	Operation string
	Message   string
}

// String returns "step N (op): message".
func (f Failure) String() string {
	op := f.Operation
	if op == "" {
		op = "check"
	}
	return fmt.Sprintf("step %d (%s): %s", f.Step, op, f.Message)
}

// Result is the outcome of replaying one scenario.
type Result struct {
	Name     string
	Path     string
	Steps    int
	Failures []Failure
	// State is the final DumpState of the composer.
	State   string
	Elapsed time.Duration
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// Runner replays scenarios.
type Runner struct {
	logger *slog.Logger
	opts   []composer.Option
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the runner's logger. It is also handed to each composer.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithComposerOptions adds options applied to every composer.
func WithComposerOptions(opts ...composer.Option) RunnerOption {
	return func(r *Runner) {
		r.opts = append(r.opts, opts...)
	}
}

// NewRunner creates a runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{logger: logging.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunAll replays every scenario in order.
func (r *Runner) RunAll(scenarios []*Scenario) []*Result {
	out := make([]*Result, len(scenarios))
	for i, s := range scenarios {
		out[i] = r.Run(s)
	}
	return out
}

// Run replays one scenario on a fresh composer. Action identifiers are
// sequential (act-1, act-2, ...) so scenarios can name them.
func (r *Runner) Run(s *Scenario) *Result {
	start := time.Now()
	res := &Result{Name: s.Name, Path: s.Path}

	opts := append([]composer.Option{composer.WithLogger(r.logger)}, r.opts...)
	opts = append(opts,
		composer.WithIDGenerator(action.SequentialGenerator()),
		composer.WithContent(s.Content),
	)
	m := composer.New(opts...)

	if s.HTML != "" {
		if _, err := m.SetContentFromHTML(s.HTML); err != nil {
			res.Failures = append(res.Failures, Failure{Operation: "html", Message: err.Error()})
			res.State = m.DumpState()
			return res
		}
	}

	for i, st := range s.Steps {
		op, err := st.operation()
		if err != nil {
			res.Failures = append(res.Failures, Failure{Step: i + 1, Message: err.Error()})
			break
		}

		u, cmdErr := execute(m, op, st)
		res.Steps++
		r.logger.Debug("scenario step",
			slog.String("scenario", s.Name),
			slog.Int("step", i+1),
			slog.String("op", op),
			slog.Any("error", cmdErr))

		for _, msg := range check(m, op, st.Expect, u, cmdErr) {
			res.Failures = append(res.Failures, Failure{Step: i + 1, Operation: op, Message: msg})
		}
	}

	res.State = m.DumpState()
	res.Elapsed = time.Since(start)
	return res
}

// execute performs a step's operation. A step without one yields a
// zero Update.
func execute(m *composer.Model, op string, st Step) (composer.Update, error) {
	switch op {
	case "":
		return composer.Update{}, nil
	case "replace_text":
		return m.ReplaceText(*st.ReplaceText)
	case "replace_text_in":
		return m.ReplaceTextIn(st.ReplaceTextIn.Text, st.ReplaceTextIn.Start, st.ReplaceTextIn.End)
	case "select":
		return m.Select(st.Select[0], st.Select[1])
	case "delete_in":
		return m.DeleteIn(st.DeleteIn[0], st.DeleteIn[1])
	case "set_html":
		return m.SetContentFromHTML(*st.SetHTML)
	case "action_response":
		return m.ActionResponse(action.ID(st.ActionResponse.Action), []byte(st.ActionResponse.Response))
	case "cancel_action":
		return m.CancelAction(action.ID(st.CancelAction)), nil
	case "backspace":
		return m.Backspace()
	case "delete":
		return m.Delete()
	case "enter":
		return m.Enter()
	case "undo":
		return m.Undo()
	case "redo":
		return m.Redo()
	case "set_link":
		return m.SetLink()
	default:
		return m.Apply(menu.Action(op))
	}
}

// ErrorClass names the composer error class of err: range,
// invalid_command, internal, nothing_to_undo, nothing_to_redo,
// invalid_html or invalid_state. It returns "" for nil and "unknown"
// for anything else.
func ErrorClass(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, composer.ErrRange):
		return "range"
	case errors.Is(err, composer.ErrInvalidCommand):
		return "invalid_command"
	case errors.Is(err, composer.ErrInternal):
		return "internal"
	case errors.Is(err, composer.ErrNothingToUndo):
		return "nothing_to_undo"
	case errors.Is(err, composer.ErrNothingToRedo):
		return "nothing_to_redo"
	case errors.Is(err, composer.ErrInvalidHTML):
		return "invalid_html"
	case errors.Is(err, composer.ErrInvalidState):
		return "invalid_state"
	default:
		return "unknown"
	}
}

func check(m *composer.Model, op string, exp *Expect, u composer.Update, err error) []string {
	var failures []string
	failf := func(format string, args ...any) {
		failures = append(failures, fmt.Sprintf(format, args...))
	}

	want := ""
	if exp != nil {
		want = exp.Error
	}
	if got := ErrorClass(err); got != want {
		if want == "" {
			failf("unexpected error: %v", err)
		} else {
			failf("error: want %s, got %q (%v)", want, got, err)
		}
	}
	if exp == nil {
		return failures
	}

	if exp.Text != nil && m.Text() != *exp.Text {
		failf("text: want %q, got %q", *exp.Text, m.Text())
	}
	if exp.HTML != nil && m.GetContentAsHTML() != *exp.HTML {
		failf("html: want %q, got %q", *exp.HTML, m.GetContentAsHTML())
	}
	if exp.Markdown != nil {
		md, mdErr := m.GetContentAsMarkdown()
		if mdErr != nil {
			failf("markdown: %v", mdErr)
		} else if strings.TrimSpace(md) != strings.TrimSpace(*exp.Markdown) {
			failf("markdown: want %q, got %q", *exp.Markdown, md)
		}
	}
	if exp.Tree != nil && strings.TrimSpace(m.Tree()) != strings.TrimSpace(*exp.Tree) {
		failf("tree: want\n%s\ngot\n%s", *exp.Tree, m.Tree())
	}
	if exp.Selection != nil {
		sel := m.Selection()
		if sel.Anchor != exp.Selection[0] || sel.Focus != exp.Selection[1] {
			failf("selection: want [%d, %d], got [%d, %d]", exp.Selection[0], exp.Selection[1], sel.Anchor, sel.Focus)
		}
	}

	state := m.MenuState()
	if exp.Active != nil {
		var got []string
		for _, a := range state.Active() {
			got = append(got, string(a))
		}
		wantActive := slices.Clone(exp.Active)
		slices.Sort(got)
		slices.Sort(wantActive)
		if !slices.Equal(got, wantActive) {
			failf("active: want %v, got %v", wantActive, got)
		}
	}
	for _, a := range exp.Disabled {
		if state.Get(menu.Action(a)).Enabled {
			failf("menu: %s should be disabled", a)
		}
	}
	for _, a := range exp.Enabled {
		if !state.Get(menu.Action(a)).Enabled {
			failf("menu: %s should be enabled", a)
		}
	}
	if exp.PendingActions != nil && len(m.PendingActions()) != *exp.PendingActions {
		failf("pending actions: want %d, got %d", *exp.PendingActions, len(m.PendingActions()))
	}

	// Update checks only make sense for a command that ran.
	if err != nil || op == "" {
		return failures
	}
	if exp.Update != "" {
		got := "keep"
		if _, ok := u.TextUpdate().(composer.ReplaceAll); ok {
			got = "replace_all"
		}
		if got != exp.Update {
			failf("update: want %s, got %s", exp.Update, got)
		}
	}
	if exp.Created != nil {
		var got []string
		for _, a := range u.Actions() {
			got = append(got, a.Kind().Name())
		}
		if !slices.Equal(got, exp.Created) {
			failf("created actions: want %v, got %v", exp.Created, got)
		}
	}
	return failures
}
