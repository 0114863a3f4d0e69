// Package log wires Uber's Zap logging library behind log/slog so the rest
// of codedist can log through the standard slog API.
//
// Initialize should be called once by each binary before logging. Until it
// is, slog.Default keeps its standard behaviour.
//
// See the Zap docs for more details: https://pkg.go.dev/go.uber.org/zap
package log

import (
	"fmt"
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// LoggingEnv is used to represent a specific configuration used by a given
// environment.
type LoggingEnv string

// String implements the Stringer interface.
func (e LoggingEnv) String() string {
	return string(e)
}

const (
	LoggingEnvDev  LoggingEnv = "dev"
	LoggingEnvProd LoggingEnv = "prod"
)

// Options configures Initialize.
type Options struct {
	// Env selects the zap configuration: "prod" logs JSON, anything else
	// uses the human readable development encoder.
	Env string
	// Verbose lowers the level to debug. By default only warnings and
	// errors are written, so command output stays clean.
	Verbose bool
	// OutputPaths overrides where logs go. Defaults to stderr.
	OutputPaths []string
}

// Initialize builds the zap logger described by opts, installs it as the
// slog default and returns it. The returned logger should be synced before
// the process exits.
func Initialize(opts Options) (*zap.Logger, error) {
	var config zap.Config
	switch strings.ToLower(opts.Env) {
	case LoggingEnvProd.String():
		config = zap.NewProductionConfig()
		// Make sure sampling is disabled.
		config.Sampling = nil
	case LoggingEnvDev.String():
		fallthrough
	default:
		config = zap.NewDevelopmentConfig()
		config.DisableStacktrace = true
	}

	level := zapcore.WarnLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}
	config.Level = zap.NewAtomicLevelAt(level)

	if len(opts.OutputPaths) > 0 {
		config.OutputPaths = opts.OutputPaths
	} else {
		config.OutputPaths = []string{"stderr"}
	}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	// Ensure slog.Default logs to the same destination as zap.
	slog.SetDefault(New(logger))
	return logger, nil
}

// New returns a slog.Logger writing to the core of logger, with context
// attrs attached to every record.
func New(logger *zap.Logger) *slog.Logger {
	return slog.New(NewContextLogHandler(zapslog.NewHandler(logger.Core(), zapslog.WithCaller(true))))
}
