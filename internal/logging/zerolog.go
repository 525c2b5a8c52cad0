package logging

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts a zerolog.Logger to Logger. Key–value args are passed
// to zerolog as a field slice.
type ZerologLogger struct {
	l zerolog.Logger
}

func NewZerologLogger(l zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{l: l}
}

// NewConsoleZerologLogger writes colourless, human-oriented lines to w.
func NewConsoleZerologLogger(w io.Writer, level string) (*ZerologLogger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}

	cw := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.TimeOnly}
	l := zerolog.New(cw).Level(lvl).With().Timestamp().Logger()
	return NewZerologLogger(l), nil
}

func zerologNop() zerolog.Logger {
	return zerolog.Nop()
}

func (z *ZerologLogger) emit(e *zerolog.Event, ctx context.Context, msg string, args []any) {
	if len(args) > 0 {
		e = e.Fields(args)
	}
	e.Ctx(ctx).Msg(msg)
}

func (z *ZerologLogger) Debug(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Debug(), ctx, msg, args)
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Info(), ctx, msg, args)
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Warn(), ctx, msg, args)
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Error(), ctx, msg, args)
}

func (z *ZerologLogger) With(args ...any) Logger {
	return &ZerologLogger{l: z.l.With().Fields(args).Logger()}
}
