// Package logging builds the zap loggers used by the command line tool.
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the logger's format and verbosity.
type Options struct {
	// JSON switches from console output to JSON lines.
	JSON bool
	// Verbose enables debug messages.
	Verbose bool
	// Output defaults to stderr, keeping stdout for generated code.
	Output io.Writer
}

// New builds a logger from opts.
func New(opts Options) *zap.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := zap.InfoLevel
	if opts.Verbose {
		level = zap.DebugLevel
	}

	var enc zapcore.Encoder
	if opts.JSON {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		enc = newConsoleEncoder(isTerminal(out))
	}

	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(out), level))
}

// newConsoleEncoder is a calm human-readable encoder: short level, no
// timestamps or callers. Levels are colored on terminals.
func newConsoleEncoder(color bool) zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.NameKey = "logger"
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if color {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.ConsoleSeparator = " "
	return zapcore.NewConsoleEncoder(cfg)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DurationMS is the "duration_ms" field.
func DurationMS(ms int64) zap.Field {
	return zap.Int64("duration_ms", ms)
}
