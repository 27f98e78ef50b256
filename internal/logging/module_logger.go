package logging

import (
	"context"

	"github.com/goliatone/go-blockmark/pkg/interfaces"
)

const (
	rootModule      = "blockmark"
	markupModule    = "blockmark.markup"
	clipboardModule = "blockmark.clipboard"
	codecModule     = "blockmark.codec"
	commandsModule  = "blockmark.commands"
)

// ModuleLogger asks provider for the logger named module and tags it with
// the module field. A nil provider, or one that returns nil, yields NoOp.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}
	var logger interfaces.Logger
	if provider != nil {
		logger = provider.GetLogger(module)
	}
	if logger == nil {
		return NoOp()
	}
	return WithFields(logger, map[string]any{FieldModule: module})
}

// MarkupLogger is used by the parser, serializer and validator.
func MarkupLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markupModule)
}

// ClipboardLogger is used by the table importer and its detectors.
func ClipboardLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, clipboardModule)
}

// CodecLogger is used by the JSON codec.
func CodecLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, codecModule)
}

// CommandLogger is used by the command handlers registered for group, e.g.
// "document" resolves to blockmark.commands.document.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	module := commandsModule
	if group != "" {
		module += "." + group
	}
	return ModuleLogger(provider, module)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.FieldsLogger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }

func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
