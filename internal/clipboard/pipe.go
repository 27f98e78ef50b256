package clipboard

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-blockmark/pkg/interfaces"
)

var (
	// pipeSeparatorPattern matches a single-cell alignment row such as
	// "---" or "|:-:|".
	pipeSeparatorPattern = regexp.MustCompile(`^\|?[\s\-:]+\|?$`)
	// alignmentCellPattern matches one cell of a multi-column alignment row.
	// A lone "-" is data, not alignment.
	alignmentCellPattern = regexp.MustCompile(`^(:-+:?|-+:|-{3,})$`)
)

// PipeDetector reads Markdown style pipe tables. Alignment rows such as
// "|---|:--:|" are discarded and the empty cells produced by leading or
// trailing "|" framing are removed.
type PipeDetector struct{}

func (PipeDetector) Name() string { return DetectorPipe }

func (PipeDetector) Accepts(payload interfaces.ClipboardPayload) bool {
	return strings.Contains(payload.Text, "|")
}

func (PipeDetector) Detect(payload interfaces.ClipboardPayload) (interfaces.TableData, bool) {
	var rows [][]string
	for _, line := range nonBlankLines(payload.Text) {
		trimmed := strings.TrimSpace(line)
		row := splitPipeRow(trimmed)
		if isAlignmentRow(trimmed, row) {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) < 2 || len(rows[0]) == 0 {
		return interfaces.TableData{}, false
	}
	return interfaces.TableData{
		Headers: rows[0],
		Rows:    rows[1:],
	}, true
}

func isAlignmentRow(line string, cells []string) bool {
	if pipeSeparatorPattern.MatchString(line) {
		return true
	}
	if len(cells) < 2 {
		return false
	}
	for _, cell := range cells {
		if !alignmentCellPattern.MatchString(cell) {
			return false
		}
	}
	return true
}

func splitPipeRow(line string) []string {
	cells := splitCells(line, "|", strings.TrimSpace)
	if len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}
