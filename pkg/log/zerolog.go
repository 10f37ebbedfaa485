package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	regerrors "github.com/dfelber/regression/pkg/errors"
)

// ZerologLogger implements Logger on top of rs/zerolog.
type ZerologLogger struct {
	zl zerolog.Logger
}

// NewZerologLogger creates a JSON zerolog logger writing to w.
func NewZerologLogger(w io.Writer, level Level) *ZerologLogger {
	zl := zerolog.New(w).Level(zerologLevel(level)).With().Timestamp().Logger()
	return &ZerologLogger{zl: zl}
}

// NewConsoleLogger creates a human-readable zerolog logger writing to w.
func NewConsoleLogger(w io.Writer, level Level) *ZerologLogger {
	out := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}
	zl := zerolog.New(out).Level(zerologLevel(level)).With().Timestamp().Logger()
	return &ZerologLogger{zl: zl}
}

// CaptureWarnings routes errors.Warn through this logger at warn level.
func (z *ZerologLogger) CaptureWarnings() {
	regerrors.SetZerologWarnFunc(func(w error) {
		e := z.zl.Warn()
		if m, ok := w.(zerolog.LogObjectMarshaler); ok {
			e = e.EmbedObject(m)
		}
		e.Msg(w.Error())
	})
}

func (z *ZerologLogger) Debug(msg string, fields ...any) { emit(z.zl.Debug(), msg, fields) }
func (z *ZerologLogger) Info(msg string, fields ...any)  { emit(z.zl.Info(), msg, fields) }
func (z *ZerologLogger) Warn(msg string, fields ...any)  { emit(z.zl.Warn(), msg, fields) }
func (z *ZerologLogger) Error(msg string, fields ...any) { emit(z.zl.Error(), msg, fields) }

// With returns a child logger carrying fields on every record.
func (z *ZerologLogger) With(fields ...any) Logger {
	ctx := z.zl.With()
	forEachField(fields, func(key string, value any) {
		if err, ok := value.(error); ok {
			ctx = ctx.AnErr(key, err)
			return
		}
		ctx = ctx.Interface(key, value)
	})
	return &ZerologLogger{zl: ctx.Logger()}
}

// Enabled reports whether records at level pass the logger's level filter.
func (z *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	return z.zl.GetLevel() <= zerologLevel(level)
}

func emit(e *zerolog.Event, msg string, fields []any) {
	if e == nil {
		return
	}
	forEachField(fields, func(key string, value any) {
		err, ok := value.(error)
		if !ok {
			e = e.Interface(key, value)
			return
		}
		e = e.AnErr(key, err)
		var m zerolog.LogObjectMarshaler
		if errors.As(err, &m) {
			e = e.Object(key+"_detail", m)
		}
	})
	e.Msg(msg)
}

// forEachField walks slog-style alternating key/value fields. A bare error
// takes the ErrAttrKey key and a slog.Attr supplies its own key.
func forEachField(fields []any, fn func(key string, value any)) {
	for i := 0; i < len(fields); i++ {
		switch f := fields[i].(type) {
		case error:
			fn(ErrAttrKey, f)
			continue
		case slog.Attr:
			fn(f.Key, f.Value.Any())
			continue
		}
		if i+1 >= len(fields) {
			fn("!BADKEY", fields[i])
			return
		}
		fn(fmt.Sprint(fields[i]), fields[i+1])
		i++
	}
}

func zerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
