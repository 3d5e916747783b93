package commands

import (
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ccollicutt/logsift/internal/logging"
	"github.com/ccollicutt/logsift/pkg/logsift"
	"github.com/ccollicutt/logsift/pkg/output"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// Viper keys for the global flags bound in the root command.
const (
	KeyLogLevel  = "log-level"
	KeyLogFormat = "log-format"
	KeyWorkers   = "workers"
)

// newLogger builds the logger described by the global flags.
func newLogger() *zap.Logger {
	return logging.New(
		logging.ParseLevel(viper.GetString(KeyLogLevel)),
		viper.GetString(KeyLogFormat),
	)
}

// openEngine loads logPath using the global flags. fallbackWorkers applies
// when no --workers flag or LOGSIFT_WORKERS value was given.
func openEngine(logPath string, fallbackWorkers int, logger *zap.Logger) (*logsift.Engine, error) {
	workers := viper.GetInt(KeyWorkers)
	if workers == 0 {
		workers = fallbackWorkers
	}
	return logsift.Open(logPath, logsift.WithWorkers(workers), logsift.WithLogger(logger))
}

// OutputOptions holds the output flags shared by report-producing commands.
type OutputOptions struct {
	Output  string
	Verbose bool
	Quiet   bool
}

func createFormatter(opts *OutputOptions) (output.Formatter, error) {
	return output.New(opts.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
}
