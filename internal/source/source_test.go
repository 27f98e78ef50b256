package source

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadSplitsFrontMatter(t *testing.T) {
	path := filepath.Join("testdata", "guide.md")
	src, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if src.Path != path {
		t.Fatalf("expected path %q, got %q", path, src.Path)
	}
	if src.Meta.Title != "Lisbon in Two Days" {
		t.Fatalf("unexpected title %q", src.Meta.Title)
	}
	if src.Meta.Description != "A short city break" {
		t.Fatalf("unexpected description %q", src.Meta.Description)
	}
	if len(src.Meta.Tags) != 2 || src.Meta.Tags[0] != "portugal" {
		t.Fatalf("unexpected tags %#v", src.Meta.Tags)
	}
	if src.Meta.Custom["region"] != "europe" {
		t.Fatalf("expected custom region, got %#v", src.Meta.Custom)
	}
	if !strings.HasPrefix(strings.TrimSpace(src.Body), `:::text [heading="Welcome"]`) {
		t.Fatalf("unexpected body %q", src.Body)
	}
	if !strings.HasPrefix(src.Header, "---\ntitle: Lisbon in Two Days") {
		t.Fatalf("unexpected header %q", src.Header)
	}
	if strings.Contains(src.Body, "title: Lisbon") {
		t.Fatalf("front matter leaked into body: %q", src.Body)
	}
}

func TestLoadWithoutFrontMatter(t *testing.T) {
	src, err := Load(filepath.Join("testdata", "plain.md"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if src.Header != "" {
		t.Fatalf("expected empty header, got %q", src.Header)
	}
	if src.Meta.Title != "" || len(src.Meta.Tags) != 0 {
		t.Fatalf("expected empty meta, got %#v", src.Meta)
	}
	if !strings.Contains(src.Body, "- No front matter here") {
		t.Fatalf("unexpected body %q", src.Body)
	}
}

func TestReadFromReader(t *testing.T) {
	src, err := Read(strings.NewReader("---\ntitle: Inline\n---\n:::text\nHi\n:::\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if src.Meta.Title != "Inline" {
		t.Fatalf("unexpected title %q", src.Meta.Title)
	}
	if strings.TrimSpace(src.Body) != ":::text\nHi\n:::" {
		t.Fatalf("unexpected body %q", src.Body)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join("testdata", "missing.md")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
