package markup

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-blockmark/pkg/interfaces"
)

// ValidateDocument walks the document and returns one message per
// structural defect, in block order. It never fails; an empty slice means
// the document is well formed.
func ValidateDocument(doc interfaces.Document) []string {
	issues := []string{}
	for idx, block := range doc {
		issues = append(issues, validateBlock(idx, block)...)
	}
	return issues
}

func validateBlock(idx int, block interfaces.ContentBlock) []string {
	var issues []string
	report := func(format string, args ...any) {
		issues = append(issues, blockLabelPrefix(idx, block)+fmt.Sprintf(format, args...))
	}

	switch b := block.(type) {
	case *interfaces.TextBlock:
		if b == nil || strings.TrimSpace(b.Content) == "" {
			report("text content is required")
		}
	case *interfaces.TipsBlock:
		if b == nil || len(b.Tips) == 0 {
			report("at least one tip is required")
		}
	case *interfaces.NotesBlock:
		if b == nil || len(b.Notes) == 0 {
			report("at least one note is required")
		}
	case *interfaces.TimelineBlock:
		if b == nil || len(b.Steps) == 0 {
			report("at least one step is required")
			break
		}
		for stepIdx, step := range b.Steps {
			if strings.TrimSpace(step.Title) == "" {
				report("step %d title is required", stepIdx+1)
			}
		}
	case *interfaces.ImageBlock:
		if b == nil || strings.TrimSpace(b.URL) == "" {
			report("image url is required")
		}
	case *interfaces.ImageGalleryBlock:
		if b == nil || len(b.Images) == 0 {
			report("at least one image is required")
			break
		}
		for imgIdx, image := range b.Images {
			if strings.TrimSpace(image.URL) == "" {
				report("image %d url is required", imgIdx+1)
			}
		}
	case *interfaces.TableBlock:
		if b == nil {
			report("at least one header is required")
			break
		}
		if len(b.Headers) == 0 {
			report("at least one header is required")
		}
		if len(b.Rows) == 0 {
			report("at least one row is required")
		}
		expected := len(b.Headers)
		for rowIdx, row := range b.Rows {
			if len(row) != expected {
				report("row %d has %d columns, expected %d", rowIdx+1, len(row), expected)
			}
		}
	default:
		issues = append(issues, fmt.Sprintf("Block %d: unsupported block type %T", idx+1, block))
	}
	return issues
}

func blockLabelPrefix(idx int, block interfaces.ContentBlock) string {
	return fmt.Sprintf("Block %d (%s): ", idx+1, block.Type())
}
