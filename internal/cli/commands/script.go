package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/wysiwyg/internal/composer"
	"github.com/dshills/wysiwyg/internal/logging"
	"github.com/dshills/wysiwyg/internal/script"
)

// NewScriptCommand creates the script command.
func NewScriptCommand() *cobra.Command {
	var (
		watchFlag bool
		content   string
		htmlFile  string
	)

	cmd := &cobra.Command{
		Use:   "script <file.lua>",
		Short: "Run a Lua script against a fresh composer",
		Long: `Run a Lua script that drives a composer through the global "wysiwyg"
module, then print the resulting document in the configured output format.

With --watch the script is re-run on a fresh composer every time it changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := EnvFrom(cmd.Context())
			path := args[0]

			var initialHTML string
			if htmlFile != "" {
				markup, err := readInput(cmd.InOrStdin(), htmlFile)
				if err != nil {
					return err
				}
				initialHTML = markup
			}

			run := func() error {
				m := env.NewModel(composer.WithContent(content))
				if initialHTML != "" {
					if _, err := m.SetContentFromHTML(initialHTML); err != nil {
						return err
					}
				}
				h := script.New(m,
					script.WithLogger(logging.WithComponent(env.Logger, "script")),
					script.WithStateOptions(script.WithOutput(cmd.OutOrStdout())),
				)
				defer func() { _ = h.Close() }()

				if err := h.Run(cmd.Context(), path); err != nil {
					return fmt.Errorf("script %s: %w", path, err)
				}
				return renderModel(cmd.OutOrStdout(), m, env.Config.Output)
			}

			if !watchFlag {
				return run()
			}
			if err := run(); err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
			return rerunOnChange(cmd.Context(), cmd.ErrOrStderr(), env.Logger, []string{path}, run)
		},
	}

	cmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "re-run the script when it changes")
	cmd.Flags().StringVar(&content, "content", "", "initial plain text content")
	cmd.Flags().StringVar(&htmlFile, "html", "", "file holding initial HTML content")
	return cmd
}
