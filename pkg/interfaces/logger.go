package interfaces

import "context"

// Logger is the leveled logger the parser, importer, codec and command
// handlers write to. Arguments after msg are alternating key/value pairs.
// The method set matches github.com/goliatone/go-logger.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// FieldsLogger is implemented by loggers that can carry fields, such as
// block_type or detector, on every entry they write.
type FieldsLogger interface {
	Logger
	WithFields(fields map[string]any) Logger
}

// LoggerProvider hands out one logger per blockmark module name.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// LoggerProviderFunc adapts a function to LoggerProvider.
type LoggerProviderFunc func(name string) Logger

// GetLogger calls f(name).
func (f LoggerProviderFunc) GetLogger(name string) Logger { return f(name) }
