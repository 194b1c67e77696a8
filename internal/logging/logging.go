// Package logging builds the zap console logger used for run diagnostics.
// Conversion records go to the record log (internal/recordlog), not here.
package logging

import (
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to stderr. Verbose lowers the level
// to debug so per-file name breakdowns are shown.
func New(verbose bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.EncodeLevel = levelEncoder()

	return config.Build()
}

// WithRun tags every entry with a fresh run identifier.
func WithRun(logger *zap.Logger) *zap.Logger {
	return logger.With(zap.String("run", uuid.NewString()[:8]))
}

func levelEncoder() zapcore.LevelEncoder {
	if fd := os.Stderr.Fd(); isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return zapcore.CapitalColorLevelEncoder
	}
	return zapcore.CapitalLevelEncoder
}
