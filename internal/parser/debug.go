package parser

import (
	"log/slog"
	"os"
)

var debugEnabled = os.Getenv("CPPDECL_DEBUG") != ""

// defaultLogger discards everything unless CPPDECL_DEBUG is set, in which
// case debug records go to stderr.
func defaultLogger() *slog.Logger {
	if debugEnabled {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.DiscardHandler)
}
