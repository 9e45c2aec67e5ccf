package vscroll

import (
	"log/slog"
	"os"
)

// logLevel controls the log level for all vscroll loggers.
// Default is LevelInfo, which suppresses Debug messages.
// SetVerbose(true) sets it to LevelDebug.
var logLevel = new(slog.LevelVar)

// SetVerbose enables or disables verbose/debug logging for the package.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// verbose returns true if debug logging is enabled.
func verbose() bool {
	return logLevel.Level() <= slog.LevelDebug
}

// managerLogger logs lifecycle events: tracked adds/removes, measurement,
// and the recoverable no-op conditions (duplicate id, unknown remove).
var managerLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

// indexLogger logs spatial index anomalies (removal of an absent id).
var indexLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
