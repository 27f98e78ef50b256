package markup

import (
	"strings"

	"github.com/goliatone/go-blockmark/pkg/interfaces"
)

// SerializeDocument renders blocks in order, separated by a blank line.
func SerializeDocument(doc interfaces.Document) string {
	parts := make([]string, 0, len(doc))
	for _, block := range doc {
		if out := SerializeBlock(block); out != "" {
			parts = append(parts, out)
		}
	}
	return strings.Join(parts, "\n\n")
}

// SerializeBlock renders a single block as ":::type [attrs]\n<body>\n:::".
// Unknown or nil blocks render as the empty string.
func SerializeBlock(block interfaces.ContentBlock) string {
	switch b := block.(type) {
	case *interfaces.TextBlock:
		if b == nil {
			return ""
		}
		return wrapBlock(b.Type(), FormatAttributes([]string{attrHeading}, map[string]string{
			attrHeading: b.Heading,
		}), []string{b.Content})
	case *interfaces.TipsBlock:
		if b == nil {
			return ""
		}
		return wrapBlock(b.Type(), titleAttrs(b.Title), itemLines(b.Tips))
	case *interfaces.NotesBlock:
		if b == nil {
			return ""
		}
		return wrapBlock(b.Type(), titleAttrs(b.Title), itemLines(b.Notes))
	case *interfaces.TimelineBlock:
		if b == nil {
			return ""
		}
		return wrapBlock(b.Type(), titleAttrs(b.Title), stepLines(b.Steps))
	case *interfaces.ImageBlock:
		if b == nil {
			return ""
		}
		return wrapBlock(b.Type(), "", imageLines(b.URL, b.Caption, b.Alt))
	case *interfaces.ImageGalleryBlock:
		if b == nil {
			return ""
		}
		return wrapBlock(b.Type(), titleAttrs(b.Title), galleryLines(b.Images))
	case *interfaces.TableBlock:
		if b == nil {
			return ""
		}
		attrs := FormatAttributes([]string{attrTitle, attrCaption}, map[string]string{
			attrTitle:   b.Title,
			attrCaption: b.Caption,
		})
		return wrapBlock(b.Type(), attrs, TableLines(b.Headers, b.Rows))
	default:
		return ""
	}
}

func wrapBlock(t interfaces.BlockType, attrs string, body []string) string {
	var out strings.Builder
	out.WriteString(fence)
	out.WriteString(string(t))
	if attrs != "" {
		out.WriteByte(' ')
		out.WriteString(attrs)
	}
	out.WriteByte('\n')
	out.WriteString(strings.Join(body, "\n"))
	out.WriteByte('\n')
	out.WriteString(fence)
	return out.String()
}

func titleAttrs(title string) string {
	return FormatAttributes([]string{attrTitle}, map[string]string{attrTitle: title})
}

func itemLines(items []string) []string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, itemPrefix+item)
	}
	return lines
}

func stepLines(steps []interfaces.ItineraryStep) []string {
	var lines []string
	for idx, step := range steps {
		if idx > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, step.Title)
		lines = append(lines, itemLines(step.Details)...)
		if step.Tips != nil {
			lines = append(lines, markerTipsOpen)
			lines = append(lines, itemLines(step.Tips)...)
			lines = append(lines, markerTipsClose)
		}
		if step.Notes != nil {
			lines = append(lines, markerNotesOpen)
			lines = append(lines, itemLines(step.Notes)...)
			lines = append(lines, markerNotesClose)
		}
	}
	return lines
}

func imageLines(url, caption, alt string) []string {
	lines := []string{"url: " + url}
	if caption != "" {
		lines = append(lines, "caption: "+caption)
	}
	if alt != "" {
		lines = append(lines, "alt: "+alt)
	}
	return lines
}

func galleryLines(images []interfaces.GalleryImage) []string {
	var lines []string
	for idx, image := range images {
		if idx > 0 {
			lines = append(lines, galleryDivider)
		}
		lines = append(lines, imageLines(image.URL, image.Caption, image.Alt)...)
	}
	return lines
}

// TableLines renders a header line, the "---" separator and one line per
// row, joining cells with " | ".
func TableLines(headers []string, rows [][]string) []string {
	if len(headers) == 0 && len(rows) == 0 {
		return nil
	}
	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, strings.Join(headers, " | "), tableSeparator)
	for _, row := range rows {
		lines = append(lines, strings.Join(row, " | "))
	}
	return lines
}

// SerializeTable renders a bare table block, as used when splicing an
// imported clipboard table into the editor.
func SerializeTable(headers []string, rows [][]string) string {
	return wrapBlock(interfaces.BlockTable, "", TableLines(headers, rows))
}
