package logging

import (
	"maps"
	"strings"

	"github.com/goliatone/go-blockmark/pkg/interfaces"
)

// Field names shared by blockmark loggers. The console provider lays entries
// out around them.
const (
	FieldModule    = "module"
	FieldBlockType = "block_type"
	FieldLine      = "line"
	FieldColumn    = "column"
	FieldDetector  = "detector"
	FieldSource    = "source_path"
	FieldOperation = "operation"
)

// WithFields scopes logger with fields when it implements
// interfaces.FieldsLogger. Other loggers are returned unchanged.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	scoped, ok := logger.(interfaces.FieldsLogger)
	if !ok || len(fields) == 0 {
		return logger
	}
	return scoped.WithFields(maps.Clone(fields))
}

// WithDiagnostic tags entries with the block type and position a parse
// diagnostic points at.
func WithDiagnostic(logger interfaces.Logger, d interfaces.Diagnostic) interfaces.Logger {
	fields := map[string]any{
		FieldLine:   d.Line,
		FieldColumn: d.Column,
	}
	if d.BlockType != "" {
		fields[FieldBlockType] = d.BlockType
	}
	return WithFields(logger, fields)
}

// WithSourceContext enriches the logger with the source path and operation
// of the document being processed. Empty values are ignored.
func WithSourceContext(logger interfaces.Logger, path, operation string) interfaces.Logger {
	fields := map[string]any{}
	if path = strings.TrimSpace(path); path != "" {
		fields[FieldSource] = path
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		fields[FieldOperation] = operation
	}
	return WithFields(logger, fields)
}

// WithDetector tags entries with the clipboard detector being attempted.
func WithDetector(logger interfaces.Logger, detector string) interfaces.Logger {
	if strings.TrimSpace(detector) == "" {
		return logger
	}
	return WithFields(logger, map[string]any{FieldDetector: detector})
}
