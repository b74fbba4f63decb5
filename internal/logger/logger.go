package logger

import (
	"log/slog"
	"os"
)

var log *slog.Logger

// Init configures the process-wide JSON logger. Call once from main
// before any other package logs.
func Init() {
	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(log)
}

// Err returns a slog attribute carrying an error under the "error" key,
// so failures share a consistent field name across the codebase.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

func l() *slog.Logger {
	if log == nil {
		Init()
	}
	return log
}

func Info(msg string, args ...any) {
	l().Info(msg, args...)
}

func Error(msg string, args ...any) {
	l().Error(msg, args...)
}

func Debug(msg string, args ...any) {
	l().Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	l().Warn(msg, args...)
}

func Fatal(msg string, args ...any) {
	l().Error(msg, args...)
	os.Exit(1)
}
