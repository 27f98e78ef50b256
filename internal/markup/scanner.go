package markup

import (
	"strings"
)

const fence = ":::"

type eventKind uint8

const (
	eventBlockOpen eventKind = iota
	eventLine
	eventBlockClose
)

// event is one token of the block grammar. Lines are only emitted while a
// block is open; text outside blocks is not part of any span.
type event struct {
	kind   eventKind
	typ    string
	attrs  string
	text   string
	line   int
	column int
}

// scanner walks a document line by line and tracks whether a fence is open.
// The first fence seen after an opener closes it, which keeps spans from
// reaching across unrelated blocks.
type scanner struct {
	events      []event
	diagnostics []diagnostic
	open        *event
}

// diagnostic is the scanner-internal form of interfaces.Diagnostic.
type diagnostic struct {
	warning bool
	line    int
	column  int
	typ     string
	message string
}

func scan(text string) ([]event, []diagnostic) {
	s := &scanner{}
	lines := strings.Split(text, "\n")
	for idx, raw := range lines {
		s.scanLine(strings.TrimSuffix(raw, "\r"), idx+1)
	}
	if s.open != nil {
		s.diagnostics = append(s.diagnostics, diagnostic{
			warning: true,
			line:    s.open.line,
			column:  s.open.column,
			typ:     s.open.typ,
			message: "block is never closed with \":::\" and was dropped",
		})
	}
	return s.events, s.diagnostics
}

func (s *scanner) scanLine(raw string, lineNo int) {
	trimmed := strings.TrimSpace(raw)
	column := strings.Index(raw, fence) + 1

	if s.open == nil {
		if typ, attrs, ok := parseOpener(trimmed); ok {
			s.openBlock(typ, attrs, lineNo, column)
			return
		}
		if strings.HasPrefix(trimmed, fence) {
			s.diagnostics = append(s.diagnostics, diagnostic{
				line:    lineNo,
				column:  column,
				message: "stray \":::\" outside of a block was ignored",
			})
		}
		return
	}

	if strings.HasPrefix(trimmed, fence) {
		s.closeBlock(lineNo, column)
		if typ, attrs, ok := parseOpener(trimmed); ok {
			s.diagnostics = append(s.diagnostics, diagnostic{
				warning: true,
				line:    lineNo,
				column:  column,
				typ:     typ,
				message: "block opened before the previous block was closed; the previous block ends here",
			})
			s.openBlock(typ, attrs, lineNo, column)
		}
		return
	}

	if idx := strings.Index(raw, fence); idx >= 0 {
		if head := strings.TrimRight(raw[:idx], " \t"); head != "" {
			s.events = append(s.events, event{kind: eventLine, text: head, line: lineNo, column: 1})
		}
		s.closeBlock(lineNo, idx+1)
		return
	}

	s.events = append(s.events, event{kind: eventLine, text: raw, line: lineNo, column: 1})
}

func (s *scanner) openBlock(typ, attrs string, lineNo, column int) {
	ev := event{kind: eventBlockOpen, typ: typ, attrs: attrs, line: lineNo, column: column}
	s.events = append(s.events, ev)
	s.open = &ev
}

func (s *scanner) closeBlock(lineNo, column int) {
	s.events = append(s.events, event{kind: eventBlockClose, line: lineNo, column: column})
	s.open = nil
}

// parseOpener recognises ":::type" optionally followed by "[attrs]" and
// nothing else on the line.
func parseOpener(trimmed string) (typ string, attrs string, ok bool) {
	if !strings.HasPrefix(trimmed, fence) {
		return "", "", false
	}
	rest := trimmed[len(fence):]
	end := 0
	for end < len(rest) && isKeyByte(rest[end]) {
		end++
	}
	if end == 0 {
		return "", "", false
	}
	typ = rest[:end]
	rest = strings.TrimSpace(rest[end:])
	switch {
	case rest == "":
		return typ, "", true
	case strings.HasPrefix(rest, "[") && strings.HasSuffix(rest, "]"):
		return typ, rest[1 : len(rest)-1], true
	default:
		return "", "", false
	}
}
