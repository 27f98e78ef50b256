package markup

import (
	"strings"
	"testing"

	"github.com/goliatone/go-blockmark/pkg/interfaces"
)

func TestValidateDocumentWellFormed(t *testing.T) {
	issues := ValidateDocument(canonicalDocument())
	if issues == nil || len(issues) != 0 {
		t.Fatalf("expected empty issues, got %#v", issues)
	}
}

func TestValidateTableColumnMismatch(t *testing.T) {
	doc := Default().ParseDocument(":::table\nA | B\n---\n1\n:::")
	issues := ValidateDocument(doc)
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %#v", issues)
	}
	if !strings.Contains(issues[0], "expected 2") || !strings.Contains(issues[0], "has 1 columns") {
		t.Fatalf("expected counts in message, got %q", issues[0])
	}
}

func TestValidateTableMatchingRows(t *testing.T) {
	doc := Default().ParseDocument(":::table\nA | B\n---\n1 | 2\n:::")
	if issues := ValidateDocument(doc); len(issues) != 0 {
		t.Fatalf("expected no issues, got %#v", issues)
	}
}

func TestValidateDocumentDefects(t *testing.T) {
	doc := interfaces.Document{
		&interfaces.TextBlock{Content: "  "},
		&interfaces.TipsBlock{},
		&interfaces.NotesBlock{Notes: []string{}},
		&interfaces.TimelineBlock{},
		&interfaces.TimelineBlock{Steps: []interfaces.ItineraryStep{{Title: "ok"}, {Title: ""}}},
		&interfaces.ImageBlock{},
		&interfaces.ImageGalleryBlock{},
		&interfaces.ImageGalleryBlock{Images: []interfaces.GalleryImage{{URL: "/a"}, {}}},
		&interfaces.TableBlock{Rows: [][]string{{"1"}, {}}},
	}
	issues := ValidateDocument(doc)

	want := []string{
		"Block 1 (text): text content is required",
		"Block 2 (tips): at least one tip is required",
		"Block 3 (notes): at least one note is required",
		"Block 4 (timeline): at least one step is required",
		"Block 5 (timeline): step 2 title is required",
		"Block 6 (image): image url is required",
		"Block 7 (gallery): at least one image is required",
		"Block 8 (gallery): image 2 url is required",
		"Block 9 (table): at least one header is required",
		"Block 9 (table): row 1 has 1 columns, expected 0",
	}
	if len(issues) != len(want) {
		t.Fatalf("expected %d issues, got %d: %#v", len(want), len(issues), issues)
	}
	for idx := range want {
		if issues[idx] != want[idx] {
			t.Fatalf("issue %d: expected %q, got %q", idx, want[idx], issues[idx])
		}
	}
}
