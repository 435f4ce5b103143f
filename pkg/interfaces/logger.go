package interfaces

import "context"

// Logger is the structured logging contract used across formkit packages.
// It mirrors the go-logger method set so providers can be swapped freely.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider hands out named loggers.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is an optional extension for loggers that can carry
// persistent structured fields.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
