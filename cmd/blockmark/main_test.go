package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blockmark/cmd/blockmark/internal/bootstrap"
)

func recordBuilder(t *testing.T) *bootstrap.Options {
	t.Helper()
	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })

	captured := &bootstrap.Options{}
	moduleBuilder = func(opts bootstrap.Options) (*bootstrap.Module, error) {
		*captured = opts
		return bootstrap.BuildModule(opts)
	}
	return captured
}

func TestRunFormatMatchesGolden(t *testing.T) {
	recordBuilder(t)

	var out bytes.Buffer
	if err := run([]string{"format", filepath.Join("testdata", "itinerary.md")}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run format: %v", err)
	}
	want, err := os.ReadFile(filepath.Join("testdata", "itinerary.golden"))
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	if out.String() != string(want) {
		t.Fatalf("format output mismatch\nwant:\n%s\ngot:\n%s", want, out.String())
	}
}

func TestRunParseReadsStdin(t *testing.T) {
	opts := recordBuilder(t)

	var out bytes.Buffer
	err := run([]string{"parse", "-ids", "slug"}, strings.NewReader(":::tips [title=\"Packing list\"]\n- Water\n:::"), &out)
	if err != nil {
		t.Fatalf("run parse: %v", err)
	}
	if opts.IDStrategy != "slug" {
		t.Fatalf("expected slug id strategy, got %q", opts.IDStrategy)
	}

	var blocks []map[string]any
	if err := json.Unmarshal(out.Bytes(), &blocks); err != nil {
		t.Fatalf("unmarshal %q: %v", out.String(), err)
	}
	if len(blocks) != 1 || blocks[0]["id"] != "tips-packing-list" {
		t.Fatalf("unexpected blocks %#v", blocks)
	}
}

func TestRunParseDiagnostics(t *testing.T) {
	recordBuilder(t)

	var out bytes.Buffer
	err := run([]string{"parse", "-diagnostics"}, strings.NewReader(":::quote\nx\n:::\n\n:::text\nHi\n:::"), &out)
	if err != nil {
		t.Fatalf("run parse: %v", err)
	}

	var envelope struct {
		Blocks      []map[string]any `json:"blocks"`
		Diagnostics []map[string]any `json:"diagnostics"`
	}
	if err := json.Unmarshal(out.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal %q: %v", out.String(), err)
	}
	if len(envelope.Blocks) != 1 || len(envelope.Diagnostics) != 1 {
		t.Fatalf("expected one block and one diagnostic, got %#v", envelope)
	}
	if envelope.Diagnostics[0]["block_type"] != "quote" {
		t.Fatalf("expected quote diagnostic, got %#v", envelope.Diagnostics[0])
	}
}

func TestRunValidateReportsDefects(t *testing.T) {
	recordBuilder(t)

	var out bytes.Buffer
	err := run([]string{"validate"}, strings.NewReader(":::table\nA | B\n---\n1\n:::"), &out)
	if err == nil {
		t.Fatalf("expected validate to fail")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if !strings.Contains(out.String(), "row 1 has 1 columns, expected 2") {
		t.Fatalf("unexpected validate output %q", out.String())
	}
}

func TestRunValidateCleanDocument(t *testing.T) {
	recordBuilder(t)

	var out bytes.Buffer
	if err := run([]string{"validate"}, strings.NewReader(":::table\nA | B\n---\n1 | 2\n:::"), &out); err != nil {
		t.Fatalf("run validate: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestRunImportTablePrefersHTML(t *testing.T) {
	opts := recordBuilder(t)

	var out bytes.Buffer
	err := run([]string{
		"import-table",
		"-html", filepath.Join("testdata", "prices.html"),
		"-detectors", "html, tsv",
		"-",
	}, strings.NewReader("x\ty\n1\t2"), &out)
	if err != nil {
		t.Fatalf("run import-table: %v", err)
	}
	if !reflect.DeepEqual(opts.Detectors, []string{"html", "tsv"}) {
		t.Fatalf("unexpected detectors %#v", opts.Detectors)
	}
	want := ":::table\nItem | Price\n---\nCoffee | 3\n:::\n"
	if out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestRunImportTableFromStdin(t *testing.T) {
	recordBuilder(t)

	var out bytes.Buffer
	if err := run([]string{"import-table"}, strings.NewReader("a\tb\n1\t2"), &out); err != nil {
		t.Fatalf("run import-table: %v", err)
	}
	if want := ":::table\na | b\n---\n1 | 2\n:::\n"; out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestRunImportTableNoTable(t *testing.T) {
	recordBuilder(t)

	var out bytes.Buffer
	err := run([]string{"import-table"}, strings.NewReader("just a sentence"), &out)
	if err == nil {
		t.Fatalf("expected import failure")
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	if err := run([]string{"render"}, strings.NewReader(""), &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unknown command")
	}
	if err := run(nil, strings.NewReader(""), &bytes.Buffer{}); err == nil {
		t.Fatalf("expected usage error without a command")
	}
}

func TestRunBootstrapErrorSurfaces(t *testing.T) {
	recordBuilder(t)

	err := run([]string{"format", "-ids", "sequential"}, strings.NewReader(":::text\nHi\n:::"), &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "bootstrap module") {
		t.Fatalf("expected bootstrap error, got %v", err)
	}
}
