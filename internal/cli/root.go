// Package cli provides the command-line interface for wysiwyg.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/wysiwyg/internal/cli/commands"
	"github.com/dshills/wysiwyg/internal/config"
	"github.com/dshills/wysiwyg/internal/logging"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "wysiwyg",
		Short: "wysiwyg - rich-text composition engine",
		Long: `wysiwyg drives a rich-text composer from the command line: replay
scripted scenarios, run Lua scripts, convert HTML, or edit interactively.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			res, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger := logging.New(res.LoggerConfig(cmd.ErrOrStderr()))
			if res.File != "" {
				logger.Debug("using config file", "path", res.File)
			}
			logger.Debug("configuration loaded", "config", res.Config.String())

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(commands.WithEnv(ctx, &commands.Env{Config: res.Config, Logger: logger}))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	// Global persistent flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./wysiwyg.yaml, ./wysiwyg.toml)")
	flags.String("log-level", config.DefaultLogLevel, "log level (debug|info|warn|error)")
	flags.String("log-format", config.DefaultLogFormat, "log format (text|json)")
	flags.Int("max-undo", config.DefaultMaxUndo, "maximum undo entries")
	flags.String("action-ids", config.DefaultActionIDs, "pending action identifiers (uuid|sequential)")
	flags.StringP("output", "o", config.DefaultOutput, "output format (table|json|html|markdown)")
	flags.String("history-file", "", "REPL history file")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.OutputTable, config.OutputJSON, config.OutputHTML, config.OutputMarkdown}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("action-ids", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.ActionIDsUUID, config.ActionIDsSequential}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit))
	rootCmd.AddCommand(commands.NewReplayCommand())
	rootCmd.AddCommand(commands.NewScriptCommand())
	rootCmd.AddCommand(commands.NewREPLCommand())
	rootCmd.AddCommand(commands.NewConvertCommand())

	return rootCmd
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
