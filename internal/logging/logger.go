// Package logging defines the structured logger used across gophnotes and
// its two implementations: slog (JSON lines) and zerolog (human console).
package logging

import (
	"context"
	"fmt"
	"io"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are key–value pairs, e.g.:
//
//	log.Info(ctx, "notes loaded", "count", n, "backend", "sqlite")
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	// Warn is for recoverable conditions such as malformed persisted state.
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New builds a Logger writing to w. format is FormatJSON (slog) or
// FormatConsole (zerolog console writer); level is debug|info|warn|error.
func New(format, level string, w io.Writer) (Logger, error) {
	switch format {
	case FormatJSON:
		return NewJSONSlogLogger(w, level)
	case FormatConsole, "":
		return NewConsoleZerologLogger(w, level)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// Nop discards everything; handy for tests.
func Nop() Logger {
	return NewZerologLogger(zerologNop())
}
