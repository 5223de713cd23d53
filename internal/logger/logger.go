package logger

import (
	"log/slog"
	"os"
)

// Log is the process-wide logger. Commands call Init once during
// cobra initialization; packages use the default (Info) level until then.
var Log = slog.New(slog.NewTextHandler(os.Stderr, nil))

// Init configures the global logger. With verbose set, request and
// response lines from the HTTP client become visible.
func Init(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	Log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
