package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/suryansh-23/subspot/internal/config"
	"github.com/suryansh-23/subspot/internal/types"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format types.LogFormat
	Output io.Writer
}

// New constructs a slog logger. Output defaults to stderr so that stdout
// stays reserved for results.
func New(opts Options) (*slog.Logger, error) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	level := parseLevel(opts.Level)
	handlerOpts := &slog.HandlerOptions{Level: level, AddSource: level <= slog.LevelDebug}

	format := types.LogFormat(strings.ToLower(strings.TrimSpace(string(opts.Format))))
	switch format {
	case types.LogConsole, "":
		return slog.New(slog.NewTextHandler(out, handlerOpts)), nil
	case types.LogJSON:
		return slog.New(slog.NewJSONHandler(out, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
}

// FromConfig builds a logger from the log section; debug forces debug level.
func FromConfig(cfg config.Config, debug bool, out io.Writer) (*slog.Logger, error) {
	level := cfg.Log.Level
	if debug {
		level = "debug"
	}
	return New(Options{Level: level, Format: cfg.Log.Format, Output: out})
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
