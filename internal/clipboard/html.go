package clipboard

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-blockmark/pkg/interfaces"
)

// HTMLDetector reads the first <table> of an HTML fragment. The first <tr>
// is the header; remaining rows that hold only empty cells are dropped.
type HTMLDetector struct{}

func (HTMLDetector) Name() string { return DetectorHTML }

func (HTMLDetector) Accepts(payload interfaces.ClipboardPayload) bool {
	return strings.Contains(strings.ToLower(payload.HTML), "<table")
}

func (HTMLDetector) Detect(payload interfaces.ClipboardPayload) (interfaces.TableData, bool) {
	root, err := html.Parse(strings.NewReader(payload.HTML))
	if err != nil {
		return interfaces.TableData{}, false
	}
	table := findElement(root, atom.Table)
	if table == nil {
		return interfaces.TableData{}, false
	}

	rows := collectRows(table, nil)
	if len(rows) == 0 || len(rows[0]) == 0 {
		return interfaces.TableData{}, false
	}

	data := interfaces.TableData{
		Headers: rows[0],
		Rows:    [][]string{},
	}
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		data.Rows = append(data.Rows, row)
	}
	if len(data.Rows) == 0 {
		return interfaces.TableData{}, false
	}
	return data, true
}

func findElement(node *html.Node, tag atom.Atom) *html.Node {
	if node.Type == html.ElementNode && node.DataAtom == tag {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, tag); found != nil {
			return found
		}
	}
	return nil
}

// collectRows gathers <tr> rows under node, including those inside
// thead/tbody/tfoot, without descending into nested tables.
func collectRows(node *html.Node, rows [][]string) [][]string {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		switch child.DataAtom {
		case atom.Table:
			continue
		case atom.Tr:
			rows = append(rows, rowCells(child))
		default:
			rows = collectRows(child, rows)
		}
	}
	return rows
}

func rowCells(tr *html.Node) []string {
	cells := []string{}
	for child := tr.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		if child.DataAtom == atom.Td || child.DataAtom == atom.Th {
			cells = append(cells, cellText(child))
		}
	}
	return cells
}

func cellText(node *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			parts = append(parts, n.Data)
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			parts = append(parts, " ")
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return strings.Join(strings.Fields(strings.Join(parts, "")), " ")
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
