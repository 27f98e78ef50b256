package console_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-blockmark/internal/logging"
	"github.com/goliatone/go-blockmark/internal/logging/console"
	"github.com/goliatone/go-blockmark/pkg/interfaces"
)

var fixedClock = func() time.Time {
	return time.Date(2024, 3, 14, 15, 9, 26, 535897000, time.UTC)
}

func newProvider(buf *bytes.Buffer, min console.Level) interfaces.LoggerProvider {
	return console.NewProvider(console.Options{Writer: buf, Clock: fixedClock, MinLevel: min})
}

func TestConsoleLoggerPlacesDiagnosticPosition(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.MarkupLogger(newProvider(&buf, console.LevelDebug))
	logger = logging.WithSourceContext(logger, "docs/trip.md", "")
	logger = logging.WithDiagnostic(logger, interfaces.Diagnostic{Line: 7, Column: 1, BlockType: "quote"})

	logger.Warn("markup.parse.skipped", "reason", "unknown block type")

	want := `2024-03-14T15:09:26.535Z WARN  [blockmark.markup] markup.parse.skipped quote@7:1 reason="unknown block type" source_path=docs/trip.md` + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected log entry\nwant: %q\ngot:  %q", want, got)
	}
}

func TestConsoleLoggerLineEntries(t *testing.T) {
	cases := []struct {
		name   string
		log    func(interfaces.Logger)
		suffix string
	}{
		{
			name: "stray line without block type",
			log: func(l interfaces.Logger) {
				logging.WithDiagnostic(l, interfaces.Diagnostic{Line: 2, Column: 4}).Debug("markup.parse.ignored")
			},
			suffix: "[blockmark.markup] markup.parse.ignored @2:4\n",
		},
		{
			name: "detector and error values",
			log: func(l interfaces.Logger) {
				logging.WithDetector(l, "tsv").Info("clipboard.detector.rejected", "error", errors.New("no rows"))
			},
			suffix: `[blockmark.markup] clipboard.detector.rejected detector=tsv error="no rows"` + "\n",
		},
		{
			name: "unpaired trailing argument",
			log: func(l interfaces.Logger) {
				l.Info("codec.decode.invalid", "count", 2, "orphan")
			},
			suffix: "[blockmark.markup] codec.decode.invalid !extra=orphan count=2\n",
		},
		{
			name: "empty value",
			log: func(l interfaces.Logger) {
				l.Info("document.command.parse.completed", "source_path", "")
			},
			suffix: `[blockmark.markup] document.command.parse.completed source_path=""` + "\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			tc.log(logging.MarkupLogger(newProvider(&buf, console.LevelTrace)))
			if got := buf.String(); !strings.HasSuffix(got, tc.suffix) {
				t.Fatalf("expected entry ending in %q, got %q", tc.suffix, got)
			}
		})
	}
}

func TestConsoleLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newProvider(&buf, console.LevelInfo).GetLogger("blockmark.clipboard")

	logger.Debug("clipboard.detector.matched")
	logger.Info("clipboard.import.failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], "INFO  [blockmark.clipboard] clipboard.import.failed") {
		t.Fatalf("expected only the info entry, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]console.Level{
		"trace":   console.LevelTrace,
		" DEBUG ": console.LevelDebug,
		"":        console.LevelInfo,
		"verbose": console.LevelInfo,
		"warning": console.LevelWarn,
		"warn":    console.LevelWarn,
		"error":   console.LevelError,
		"fatal":   console.LevelFatal,
	}
	for input, want := range cases {
		if got := console.ParseLevel(input); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", input, got, want)
		}
	}
}
