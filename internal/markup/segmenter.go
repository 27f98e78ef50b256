package markup

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-blockmark/pkg/interfaces"
)

// Segment is one top-level ":::type [attrs] body :::" span in source order.
type Segment struct {
	Type  interfaces.BlockType
	Attrs string
	Body  string
	Line  int
}

// SegmentDocument splits a document into block spans. Spans whose type is
// not part of the grammar are skipped and reported; unterminated spans are
// dropped and reported. The function never fails.
func SegmentDocument(text string) ([]Segment, []interfaces.Diagnostic) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	events, scanned := scan(text)
	diagnostics := make([]interfaces.Diagnostic, 0, len(scanned))
	for _, d := range scanned {
		diagnostics = append(diagnostics, d.export())
	}

	var (
		segments []Segment
		current  *event
		body     []string
	)
	for _, ev := range events {
		switch ev.kind {
		case eventBlockOpen:
			open := ev
			current = &open
			body = body[:0]
		case eventLine:
			body = append(body, ev.text)
		case eventBlockClose:
			if current == nil {
				continue
			}
			blockType := interfaces.BlockType(current.typ)
			if !blockType.IsValid() {
				diagnostics = append(diagnostics, interfaces.Diagnostic{
					Severity:  interfaces.SeverityWarning,
					Line:      current.line,
					Column:    current.column,
					BlockType: current.typ,
					Message:   fmt.Sprintf("unknown block type %q was skipped", current.typ),
				})
			} else {
				segments = append(segments, Segment{
					Type:  blockType,
					Attrs: current.attrs,
					Body:  strings.Join(body, "\n"),
					Line:  current.line,
				})
			}
			current = nil
			body = body[:0]
		}
	}

	slices.SortStableFunc(diagnostics, func(a, b interfaces.Diagnostic) int {
		return cmp.Compare(a.Line, b.Line)
	})
	return segments, diagnostics
}

func (d diagnostic) export() interfaces.Diagnostic {
	severity := interfaces.SeverityInfo
	if d.warning {
		severity = interfaces.SeverityWarning
	}
	return interfaces.Diagnostic{
		Severity:  severity,
		Line:      d.line,
		Column:    d.column,
		BlockType: d.typ,
		Message:   d.message,
	}
}
