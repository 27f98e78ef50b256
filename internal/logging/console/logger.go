// Package console writes blockmark log entries as single human readable
// lines, placing the module and the block position a parse diagnostic points
// at ahead of the remaining fields:
//
//	2024-03-14T15:09:26.535Z WARN  [blockmark.markup] markup.parse.skipped quote@7:1 reason=...
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-blockmark/internal/logging"
	"github.com/goliatone/go-blockmark/pkg/interfaces"
)

// Level orders console severities.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

func (l Level) String() string {
	if l < LevelTrace || l > LevelFatal {
		return "INFO"
	}
	return levelNames[l]
}

// ParseLevel maps a configured level name to a Level. Unknown or empty names
// resolve to LevelInfo.
func ParseLevel(name string) Level {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "WARNING" {
		return LevelWarn
	}
	for idx, label := range levelNames {
		if label == name {
			return Level(idx)
		}
	}
	return LevelInfo
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// extraKey holds a trailing argument that has no partner value.
const extraKey = "!extra"

// Options configures NewProvider. The zero value writes every level to
// stderr, keeping stdout free for command output.
type Options struct {
	Writer   io.Writer
	Clock    func() time.Time
	MinLevel Level
}

type sink struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
	min Level
}

// NewProvider returns a provider whose loggers share one writer.
func NewProvider(opts Options) interfaces.LoggerProvider {
	s := &sink{out: opts.Writer, now: opts.Clock, min: opts.MinLevel}
	if s.out == nil {
		s.out = os.Stderr
	}
	if s.now == nil {
		s.now = time.Now
	}
	return interfaces.LoggerProviderFunc(func(name string) interfaces.Logger {
		return &logger{sink: s, name: name}
	})
}

type logger struct {
	sink   *sink
	name   string
	fields map[string]any
}

var _ interfaces.FieldsLogger = (*logger)(nil)

func (l *logger) Trace(msg string, args ...any) { l.write(LevelTrace, msg, args) }
func (l *logger) Debug(msg string, args ...any) { l.write(LevelDebug, msg, args) }
func (l *logger) Info(msg string, args ...any)  { l.write(LevelInfo, msg, args) }
func (l *logger) Warn(msg string, args ...any)  { l.write(LevelWarn, msg, args) }
func (l *logger) Error(msg string, args ...any) { l.write(LevelError, msg, args) }
func (l *logger) Fatal(msg string, args ...any) { l.write(LevelFatal, msg, args) }

func (l *logger) WithFields(fields map[string]any) interfaces.Logger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	for key, value := range l.fields {
		merged[key] = value
	}
	for key, value := range fields {
		merged[key] = value
	}
	return &logger{sink: l.sink, name: l.name, fields: merged}
}

// WithContext returns l; the console layout has no context-derived fields.
func (l *logger) WithContext(context.Context) interfaces.Logger { return l }

func (l *logger) write(level Level, msg string, args []any) {
	if level < l.sink.min {
		return
	}
	fields := make(map[string]any, len(l.fields)+len(args)/2)
	for key, value := range l.fields {
		fields[key] = value
	}
	for idx := 0; idx < len(args); idx += 2 {
		if idx+1 == len(args) {
			fields[extraKey] = args[idx]
			break
		}
		fields[fmt.Sprint(args[idx])] = args[idx+1]
	}

	line := l.format(l.sink.now(), level, msg, fields)

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	// Write failures are dropped; there is nowhere left to report them.
	_, _ = io.WriteString(l.sink.out, line)
}

func (l *logger) format(ts time.Time, level Level, msg string, fields map[string]any) string {
	var b strings.Builder
	b.WriteString(ts.UTC().Format(timeLayout))
	fmt.Fprintf(&b, " %-5s ", level)

	module := l.name
	if value, ok := fields[logging.FieldModule]; ok {
		module = fmt.Sprint(value)
		delete(fields, logging.FieldModule)
	}
	if module != "" {
		b.WriteString("[" + module + "] ")
	}
	b.WriteString(msg)

	if position := takePosition(fields); position != "" {
		b.WriteString(" " + position)
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		b.WriteString(" " + key + "=" + formatValue(fields[key]))
	}
	b.WriteByte('\n')
	return b.String()
}

// takePosition removes the block type, line and column fields and renders
// them as "type@line:column". Missing parts are left out.
func takePosition(fields map[string]any) string {
	blockType, hasType := fields[logging.FieldBlockType]
	line, hasLine := fields[logging.FieldLine]
	column, hasColumn := fields[logging.FieldColumn]
	delete(fields, logging.FieldBlockType)
	delete(fields, logging.FieldLine)
	delete(fields, logging.FieldColumn)

	var b strings.Builder
	if hasType {
		b.WriteString(fmt.Sprint(blockType))
	}
	if hasLine {
		b.WriteString("@" + fmt.Sprint(line))
		if hasColumn {
			b.WriteString(":" + fmt.Sprint(column))
		}
	}
	return b.String()
}

func formatValue(value any) string {
	var text string
	switch v := value.(type) {
	case string:
		text = v
	case error:
		text = v.Error()
	default:
		text = fmt.Sprint(v)
	}
	if text == "" || strings.ContainsAny(text, " \t\r\n\"=") {
		return strconv.Quote(text)
	}
	return text
}
