package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/dshills/wysiwyg/internal/config"
	"github.com/dshills/wysiwyg/internal/logging"
	"github.com/dshills/wysiwyg/internal/scenario"
)

// NewReplayCommand creates the replay command.
func NewReplayCommand() *cobra.Command {
	var watchFlag bool

	cmd := &cobra.Command{
		Use:   "replay <scenario.yaml|dir>...",
		Short: "Replay YAML scenarios and check their expectations",
		Long: `Replay composer scenarios described in YAML. Directories are expanded to
the .yaml and .yml files they contain. The command fails if any
expectation does not hold.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := EnvFrom(cmd.Context())

			run := func() error {
				scenarios, err := loadScenarios(args)
				if err != nil {
					return err
				}
				runner := scenario.NewRunner(
					scenario.WithLogger(logging.WithComponent(env.Logger, "scenario")),
					scenario.WithComposerOptions(env.Config.ComposerOptions(env.Logger)...),
				)
				results := runner.RunAll(scenarios)
				if err := renderResults(cmd.OutOrStdout(), results, env.Config.Output); err != nil {
					return err
				}
				failed := 0
				for _, r := range results {
					if !r.Passed() {
						failed++
					}
				}
				if failed > 0 {
					return fmt.Errorf("%d of %d scenario(s) failed", failed, len(results))
				}
				return nil
			}

			if !watchFlag {
				return run()
			}
			if err := run(); err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
			scenarios, err := loadScenarios(args)
			if err != nil {
				return err
			}
			paths := make([]string, len(scenarios))
			for i, s := range scenarios {
				paths[i] = s.Path
			}
			return rerunOnChange(cmd.Context(), cmd.ErrOrStderr(), env.Logger, paths, run)
		},
	}

	cmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "replay again when a scenario file changes")
	return cmd
}

func loadScenarios(args []string) ([]*scenario.Scenario, error) {
	var out []*scenario.Scenario
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			all, err := scenario.LoadAll(arg)
			if err != nil {
				return nil, err
			}
			out = append(out, all...)
			continue
		}
		s, err := scenario.Load(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no scenarios found in %v", args)
	}
	return out, nil
}

type resultEntry struct {
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Steps    int      `json:"steps"`
	Passed   bool     `json:"passed"`
	Failures []string `json:"failures,omitempty"`
}

func renderResults(w io.Writer, results []*scenario.Result, format string) error {
	if format == config.OutputJSON {
		entries := make([]resultEntry, len(results))
		for i, r := range results {
			entries[i] = resultEntry{Name: r.Name, Path: r.Path, Steps: r.Steps, Passed: r.Passed()}
			for _, f := range r.Failures {
				entries[i].Failures = append(entries[i].Failures, f.String())
			}
		}
		return renderJSON(w, entries)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Scenario", "Steps", "Result", "Time"})
	for _, r := range results {
		status := "PASS"
		if !r.Passed() {
			status = fmt.Sprintf("FAIL (%d)", len(r.Failures))
		}
		t.AppendRow(table.Row{r.Name, r.Steps, status, r.Elapsed.Round(time.Microsecond)})
	}
	t.Render()

	for _, r := range results {
		for _, f := range r.Failures {
			_, _ = fmt.Fprintf(w, "%s: %s\n", r.Name, f)
		}
	}
	return nil
}
