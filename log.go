package gui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// guiLogLevel controls the log level for all GUI loggers.
// SetVerbose(true) sets it to LevelDebug.
var guiLogLevel = new(slog.LevelVar)

// guiLogger is the logger for context, text edit and clipper debugging.
var guiLogger = newGUILogger(os.Stderr)

func newGUILogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: guiLogLevel}))
}

// SetVerbose enables or disables verbose/debug logging for GUI components.
func SetVerbose(v bool) {
	if v {
		guiLogLevel.Set(slog.LevelDebug)
	} else {
		guiLogLevel.Set(slog.LevelInfo)
	}
}

// IsVerbose reports whether debug logging is enabled.
func IsVerbose() bool {
	return guiLogLevel.Level() <= slog.LevelDebug
}

// SetLogOutput redirects GUI logging to w. Pass nil to restore stderr.
func SetLogOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	guiLogger = newGUILogger(w)
}

// assertf panics when a caller breaks an API contract. These are programming
// errors, not runtime conditions, so they are never returned as errors.
func assertf(cond bool, format string, args ...any) {
	if cond {
		return
	}
	msg := fmt.Sprintf(format, args...)
	guiLogger.Error("contract violation", "msg", msg)
	panic("gui: " + msg)
}
