package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/wysiwyg/internal/config"
)

// Conversion targets accepted by --to besides the output formats.
const convertTree = "tree"

// NewConvertCommand creates the convert command.
func NewConvertCommand() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "convert <file.html|->",
		Short: "Load HTML into a composer and print it in another form",
		Long: `Parse an HTML fragment the way the composer loads content and print the
result as normalized HTML, Markdown, a document tree, or JSON state.
Use "-" to read from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			markup, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			env := EnvFrom(cmd.Context())
			m := env.NewModel()
			if _, err := m.SetContentFromHTML(markup); err != nil {
				return err
			}

			if to == convertTree {
				_, err := fmt.Fprint(cmd.OutOrStdout(), m.Tree())
				return err
			}
			if to == "" {
				to = env.Config.Output
			}
			return renderModel(cmd.OutOrStdout(), m, to)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "target format (markdown|html|tree|json|table; default: --output)")
	_ = cmd.RegisterFlagCompletionFunc("to", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.OutputMarkdown, config.OutputHTML, convertTree, config.OutputJSON, config.OutputTable}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func readInput(stdin io.Reader, path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
