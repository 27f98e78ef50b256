package clipboard

import (
	"strings"

	"github.com/goliatone/go-blockmark/pkg/interfaces"
)

// TSVDetector reads tab separated rows, as produced by copying cells out of
// a spreadsheet. Rows whose width differs from the header are discarded.
type TSVDetector struct{}

func (TSVDetector) Name() string { return DetectorTSV }

func (TSVDetector) Accepts(payload interfaces.ClipboardPayload) bool {
	return strings.Contains(payload.Text, "\t")
}

func (TSVDetector) Detect(payload interfaces.ClipboardPayload) (interfaces.TableData, bool) {
	return detectDelimited(payload.Text, "\t", strings.TrimSpace)
}

// CSVDetector reads comma separated rows. Quoting is handled naively: a
// cell wrapped in double quotes loses them, but a quoted comma still splits
// the cell.
type CSVDetector struct{}

func (CSVDetector) Name() string { return DetectorCSV }

func (CSVDetector) Accepts(payload interfaces.ClipboardPayload) bool {
	return strings.Contains(payload.Text, ",")
}

func (CSVDetector) Detect(payload interfaces.ClipboardPayload) (interfaces.TableData, bool) {
	return detectDelimited(payload.Text, ",", unquoteCell)
}

func unquoteCell(cell string) string {
	cell = strings.TrimSpace(cell)
	if len(cell) >= 2 && strings.HasPrefix(cell, `"`) && strings.HasSuffix(cell, `"`) {
		cell = strings.TrimSpace(cell[1 : len(cell)-1])
	}
	return cell
}

func detectDelimited(text, sep string, clean func(string) string) (interfaces.TableData, bool) {
	lines := nonBlankLines(text)
	if len(lines) == 0 {
		return interfaces.TableData{}, false
	}

	headers := splitCells(lines[0], sep, clean)
	data := interfaces.TableData{
		Headers: headers,
		Rows:    [][]string{},
	}
	for _, line := range lines[1:] {
		row := splitCells(line, sep, clean)
		if len(row) != len(headers) {
			continue
		}
		data.Rows = append(data.Rows, row)
	}
	if len(data.Rows) == 0 {
		return interfaces.TableData{}, false
	}
	return data, true
}

func splitCells(line, sep string, clean func(string) string) []string {
	parts := strings.Split(line, sep)
	cells := make([]string, len(parts))
	for idx, part := range parts {
		cells[idx] = clean(part)
	}
	return cells
}

// nonBlankLines splits text on any newline convention and drops lines that
// contain only whitespace. Tabs inside lines are preserved.
func nonBlankLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
