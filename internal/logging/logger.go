// Package logging configures slog for the API: JSON to stdout, with ERROR
// records additionally persisted to the system_logs table.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// NewJSONHandler writes JSON records to w. Development builds log at DEBUG.
func NewJSONHandler(w io.Writer, development bool) slog.Handler {
	level := slog.LevelInfo
	if development {
		level = slog.LevelDebug
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

// Setup installs the stdout JSON logger as the process default.
func Setup(development bool) {
	slog.SetDefault(slog.New(NewJSONHandler(os.Stdout, development)))
}
