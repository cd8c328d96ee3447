package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wysiwyg v%s (%s)\n", version, commit)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Rich-text composition engine")
		},
	}
}
