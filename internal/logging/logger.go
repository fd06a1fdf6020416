package logging

import (
	"io"
	"log/slog"
	"os"
	"sort"
	"sync/atomic"
)

type Fields map[string]interface{}

var logger atomic.Pointer[slog.Logger]

func init() {
	SetOutput(os.Stderr, slog.LevelInfo)
}

// SetOutput replaces the JSON sink. Tests point it at a buffer.
func SetOutput(w io.Writer, level slog.Level) {
	logger.Store(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})))
}

// ParseLevel maps "debug", "info", "warn" and "error" to a slog level,
// defaulting to info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func attrs(fields Fields) []any {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, slog.Any(k, fields[k]))
	}
	return out
}

func withErr(fields Fields, err error) Fields {
	if fields == nil {
		fields = Fields{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	return fields
}

// Debug logs a debug message with optional fields.
func Debug(msg string, fields Fields) {
	logger.Load().Debug(msg, attrs(fields)...)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	logger.Load().Info(msg, attrs(fields)...)
}

// Warn logs a recoverable problem.
func Warn(msg string, fields Fields) {
	logger.Load().Warn(msg, attrs(fields)...)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	logger.Load().Error(msg, attrs(withErr(fields, err))...)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	logger.Load().Error(msg, attrs(withErr(fields, err))...)
	os.Exit(1)
}
