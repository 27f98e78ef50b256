package markup

import (
	"strings"

	"github.com/goliatone/go-blockmark/pkg/interfaces"
)

const (
	attrHeading = "heading"
	attrTitle   = "title"
	attrCaption = "caption"

	itemPrefix      = "- "
	headingPrefix   = "#"
	galleryDivider  = "---"
	tableSeparator  = "---"
	tableCellMarker = "|"
)

// blockParser builds one block variant from a segment. The id is assigned
// by the caller.
type blockParser func(id string, attrs map[string]string, body string) interfaces.ContentBlock

var blockParsers = map[interfaces.BlockType]blockParser{
	interfaces.BlockText:     parseText,
	interfaces.BlockTips:     parseTips,
	interfaces.BlockNotes:    parseNotes,
	interfaces.BlockTimeline: parseTimeline,
	interfaces.BlockImage:    parseImage,
	interfaces.BlockGallery:  parseGallery,
	interfaces.BlockTable:    parseTable,
}

// ParseSegment converts a single segment into its block variant. It returns
// nil for segment types outside the grammar.
func ParseSegment(id string, seg Segment) interfaces.ContentBlock {
	parse, ok := blockParsers[seg.Type]
	if !ok {
		return nil
	}
	return parse(id, ParseAttributes(seg.Attrs), seg.Body)
}

func parseText(id string, attrs map[string]string, body string) interfaces.ContentBlock {
	return &interfaces.TextBlock{
		ID:      id,
		Content: strings.TrimSpace(body),
		Heading: attrs[attrHeading],
	}
}

func parseTips(id string, attrs map[string]string, body string) interfaces.ContentBlock {
	return &interfaces.TipsBlock{
		ID:    id,
		Title: attrs[attrTitle],
		Tips:  parseItems(body),
	}
}

func parseNotes(id string, attrs map[string]string, body string) interfaces.ContentBlock {
	return &interfaces.NotesBlock{
		ID:    id,
		Title: attrs[attrTitle],
		Notes: parseItems(body),
	}
}

// parseItems implements the lenient list grammar shared by tips and notes:
// "- item" and bare "item" lines are both entries, "#" lines are headings
// and are ignored.
func parseItems(body string) []string {
	items := []string{}
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, headingPrefix) {
			continue
		}
		items = append(items, stripItemPrefix(line))
	}
	return items
}

func stripItemPrefix(line string) string {
	if strings.HasPrefix(line, itemPrefix) {
		return strings.TrimSpace(line[len(itemPrefix):])
	}
	return line
}

func parseTimeline(id string, attrs map[string]string, body string) interfaces.ContentBlock {
	return &interfaces.TimelineBlock{
		ID:    id,
		Title: attrs[attrTitle],
		Steps: ParseSteps(id, body),
	}
}

func parseImage(id string, _ map[string]string, body string) interfaces.ContentBlock {
	image, _ := parseImageFields(strings.Split(body, "\n"))
	return &interfaces.ImageBlock{
		ID:      id,
		URL:     image.URL,
		Caption: image.Caption,
		Alt:     image.Alt,
	}
}

func parseGallery(id string, attrs map[string]string, body string) interfaces.ContentBlock {
	images := []interfaces.GalleryImage{}
	var segment []string
	flush := func() {
		if image, ok := parseImageFields(segment); ok {
			images = append(images, image)
		}
		segment = segment[:0]
	}
	for _, raw := range strings.Split(body, "\n") {
		if strings.TrimSpace(raw) == galleryDivider {
			flush()
			continue
		}
		segment = append(segment, raw)
	}
	flush()

	return &interfaces.ImageGalleryBlock{
		ID:     id,
		Title:  attrs[attrTitle],
		Images: images,
	}
}

// parseImageFields reads "key: value" lines. The boolean reports whether any
// recognised key was present so empty gallery segments can be skipped.
func parseImageFields(lines []string) (interfaces.GalleryImage, bool) {
	var (
		image interfaces.GalleryImage
		seen  bool
	)
	for _, raw := range lines {
		key, value, ok := strings.Cut(strings.TrimSpace(raw), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "url":
			image.URL = value
		case "caption":
			image.Caption = value
		case "alt":
			image.Alt = value
		default:
			continue
		}
		seen = true
	}
	return image, seen
}

func parseTable(id string, attrs map[string]string, body string) interfaces.ContentBlock {
	table := &interfaces.TableBlock{
		ID:      id,
		Title:   attrs[attrTitle],
		Caption: attrs[attrCaption],
		Headers: []string{},
		Rows:    [][]string{},
	}

	// Lines without cells, such as a bare "|", are skipped like blank lines
	// so they never become a zero-width header or row.
	var lines []string
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		if len(splitTableLine(line)) == 0 {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return table
	}

	table.Headers = splitTableLine(lines[0])
	rest := lines[1:]
	if len(rest) > 0 && strings.Contains(rest[0], tableSeparator) {
		rest = rest[1:]
	}
	for _, line := range rest {
		table.Rows = append(table.Rows, splitTableLine(line))
	}
	return table
}

// splitTableLine splits on "|", trims every cell and drops empty cells.
func splitTableLine(line string) []string {
	cells := []string{}
	for _, cell := range strings.Split(line, tableCellMarker) {
		if cell = strings.TrimSpace(cell); cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}
