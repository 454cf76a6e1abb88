package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

type Logger struct {
	l *slog.Logger
}

func New(l *slog.Logger) *Logger {
	return &Logger{l: l}
}

// NewWithOptions builds a logger writing to w. Unknown levels fall back to
// info and unknown formats to text.
func NewWithOptions(w io.Writer, level, format string) *Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)} //nolint:exhaustruct

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return New(slog.New(handler))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{l: l.l.With(args...)}
}

func (l *Logger) Slog() *slog.Logger {
	return l.l
}

func (l *Logger) LogDebug(format string, v ...any) {
	l.l.Debug(fmt.Sprintf(format, v...))
}

func (l *Logger) LogInfo(format string, v ...any) {
	l.l.Info(fmt.Sprintf(format, v...))
}

func (l *Logger) LogWarn(format string, v ...any) {
	l.l.Warn(fmt.Sprintf(format, v...))
}

func (l *Logger) LogErrorf(format string, v ...any) {
	l.l.Error(fmt.Sprintf(format, v...))
}
