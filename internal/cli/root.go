// Package cli provides the command-line interface for LogSift.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ccollicutt/logsift/internal/cli/commands"
)

// EnvPrefix prefixes environment variables that mirror global flags,
// e.g. LOGSIFT_LOG_LEVEL for --log-level.
const EnvPrefix = "LOGSIFT"

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors prevents Cobra from printing this itself
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "logsift",
		Short: "Filter, search and timeline log files",
		Long: `LogSift is a batch log analysis tool.

It loads a log file (LF, CRLF, CR or mixed line endings) and:
  - Applies ordered include/exclude rules, tagging every line
  - Counts how many lines each rule claimed
  - Extracts timestamped events for a timeline
  - Searches for plain text or regular expressions

Global flags can also be set through the environment, e.g.
LOGSIFT_LOG_LEVEL=debug or LOGSIFT_WORKERS=4.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String(commands.KeyLogLevel, "warn", "Log level (debug|info|warn|error)")
	flags.String(commands.KeyLogFormat, "console", "Log format (console|json)")
	flags.Int(commands.KeyWorkers, 0, "Parallel workers (0 = rule file setting, else one per CPU)")

	bindFlags(rootCmd)

	rootCmd.AddCommand(commands.NewFilterCommand())
	rootCmd.AddCommand(commands.NewSearchCommand())
	rootCmd.AddCommand(commands.NewTimelineCommand())
	rootCmd.AddCommand(commands.NewLinesCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}

// bindFlags wires the persistent flags into viper so that flag values win
// over LOGSIFT_* environment variables, which win over defaults.
func bindFlags(cmd *cobra.Command) {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	for _, key := range []string{commands.KeyLogLevel, commands.KeyLogFormat, commands.KeyWorkers} {
		if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(key)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", key, err))
		}
	}
}
