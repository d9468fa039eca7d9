// Package notify delivers user-facing outcome messages.
package notify

import (
	"context"
	"log/slog"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notifier shows a short message to the user. Implementations must not block.
type Notifier interface {
	Notify(ctx context.Context, message string, severity Severity)
}

// Log writes notifications to a slog.Logger. Errors are logged at error level,
// everything else at info.
type Log struct {
	Logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}

	return &Log{Logger: logger}
}

func (l *Log) Notify(ctx context.Context, message string, severity Severity) {
	level := slog.LevelInfo
	if severity == SeverityError {
		level = slog.LevelError
	}

	l.Logger.Log(ctx, level, message, "severity", string(severity))
}

// Func adapts a plain function to Notifier.
type Func func(ctx context.Context, message string, severity Severity)

func (f Func) Notify(ctx context.Context, message string, severity Severity) {
	f(ctx, message, severity)
}

// Outcome picks the message and severity for the result of an operation.
// A nil err yields success with the given message; otherwise the error text is reported.
func Outcome(success string, err error) (string, Severity) {
	if err != nil {
		return err.Error(), SeverityError
	}

	return success, SeveritySuccess
}
