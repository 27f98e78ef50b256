package markup

import (
	"strings"
	"testing"

	"github.com/goliatone/go-blockmark/pkg/interfaces"
)

func canonicalDocument() interfaces.Document {
	return interfaces.Document{
		&interfaces.TextBlock{Content: "Hello **world**\n\nSecond paragraph", Heading: "Intro"},
		&interfaces.TipsBlock{Title: "Packing", Tips: []string{"Water", "Hat"}},
		&interfaces.NotesBlock{Notes: []string{"Closed Mondays"}},
		&interfaces.TimelineBlock{Title: "Day one", Steps: []interfaces.ItineraryStep{
			{Title: "Arrive", Details: []string{"Check in"}, Tips: []string{"Ask for a view"}},
			{Title: "Dinner", Details: []string{}, Notes: []string{}},
			{Title: "Sleep", Details: []string{}},
		}},
		&interfaces.ImageBlock{URL: "/a.jpg", Caption: "Harbour"},
		&interfaces.ImageGalleryBlock{Title: "Porto", Images: []interfaces.GalleryImage{
			{URL: "/b.jpg", Alt: "Bridge"},
			{URL: "/c.jpg"},
		}},
		&interfaces.TableBlock{Title: "Menu", Caption: "Prices", Headers: []string{"Item", "Cost"}, Rows: [][]string{{"Tea", "2"}}},
	}
}

func TestSerializeBlockForms(t *testing.T) {
	cases := []struct {
		name  string
		block interfaces.ContentBlock
		want  string
	}{
		{
			name:  "text",
			block: &interfaces.TextBlock{Content: "Hello", Heading: "Intro"},
			want:  ":::text [heading=\"Intro\"]\nHello\n:::",
		},
		{
			name:  "tips",
			block: &interfaces.TipsBlock{Tips: []string{"A", "B"}},
			want:  ":::tips\n- A\n- B\n:::",
		},
		{
			name: "timeline",
			block: &interfaces.TimelineBlock{Steps: []interfaces.ItineraryStep{
				{Title: "Step One", Details: []string{"d1"}, Tips: []string{"t1"}},
				{Title: "Step Two", Details: []string{}},
			}},
			want: ":::timeline\nStep One\n- d1\n[tips]\n- t1\n[/tips]\n\nStep Two\n:::",
		},
		{
			name:  "image",
			block: &interfaces.ImageBlock{URL: "/a.jpg", Alt: "A"},
			want:  ":::image\nurl: /a.jpg\nalt: A\n:::",
		},
		{
			name: "gallery",
			block: &interfaces.ImageGalleryBlock{Images: []interfaces.GalleryImage{
				{URL: "/a.jpg"},
				{URL: "/b.jpg", Caption: "B"},
			}},
			want: ":::gallery\nurl: /a.jpg\n---\nurl: /b.jpg\ncaption: B\n:::",
		},
		{
			name:  "table",
			block: &interfaces.TableBlock{Caption: "Prices", Headers: []string{"A", "B"}, Rows: [][]string{{"1", "2"}}},
			want:  ":::table [caption=\"Prices\"]\nA | B\n---\n1 | 2\n:::",
		},
		{
			name:  "nil block",
			block: (*interfaces.TipsBlock)(nil),
			want:  "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SerializeBlock(tc.block); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestSerializeDocumentJoinsWithBlankLine(t *testing.T) {
	got := SerializeDocument(interfaces.Document{
		&interfaces.TipsBlock{Tips: []string{"A"}},
		nil,
		&interfaces.NotesBlock{Notes: []string{"B"}},
	})
	if want := ":::tips\n- A\n:::\n\n:::notes\n- B\n:::"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRoundTripCanonicalDocument(t *testing.T) {
	svc := Default()
	doc := canonicalDocument()

	parsed := svc.ParseDocument(SerializeDocument(doc))
	if !Equal(parsed, doc) {
		t.Fatalf("round trip changed the document\nserialized:\n%s", SerializeDocument(doc))
	}
}

func TestRoundTripStableAfterNormalization(t *testing.T) {
	svc := Default()
	lenient := ":::tips\n# Heading\nplain line\n- dashed\n:::\n:::timeline\nStep\nbare detail\n[notes]\nnote\n[/notes]\n:::"

	first := svc.ParseDocument(lenient)
	second := svc.ParseDocument(svc.SerializeDocument(first))
	if !Equal(first, second) {
		t.Fatalf("parse(serialize(parse(x))) differs from parse(x)")
	}
	third := svc.ParseDocument(svc.SerializeDocument(second))
	if !Equal(second, third) {
		t.Fatalf("second round trip was not stable")
	}
}

func TestRoundTripStableForCelllessTableLines(t *testing.T) {
	svc := Default()
	cases := []struct {
		name    string
		input   string
		headers []string
		rows    int
	}{
		{name: "bare pipe row", input: ":::table\nA | B\n---\n|\n1 | 2\n:::", headers: []string{"A", "B"}, rows: 1},
		{name: "bare pipe header", input: ":::table\n|\n1 | 2\n:::", headers: []string{"1", "2"}, rows: 0},
		{name: "framing only lines", input: ":::table\n| |\nA | B\n||\n1 | 2\n:::", headers: []string{"A", "B"}, rows: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			first := svc.ParseDocument(tc.input)
			table, ok := first[0].(*interfaces.TableBlock)
			if !ok {
				t.Fatalf("expected table block, got %T", first[0])
			}
			if strings.Join(table.Headers, ",") != strings.Join(tc.headers, ",") {
				t.Fatalf("expected headers %v, got %v", tc.headers, table.Headers)
			}
			if len(table.Rows) != tc.rows {
				t.Fatalf("expected %d rows, got %v", tc.rows, table.Rows)
			}
			for _, row := range table.Rows {
				if len(row) == 0 {
					t.Fatalf("unexpected zero-cell row in %v", table.Rows)
				}
			}

			second := svc.ParseDocument(svc.SerializeDocument(first))
			if !Equal(first, second) {
				t.Fatalf("parse(serialize(parse(x))) differs from parse(x)")
			}
			before := strings.Join(svc.ValidateDocument(first), "\n")
			after := strings.Join(svc.ValidateDocument(second), "\n")
			if before != after {
				t.Fatalf("validation changed across round trip: %q vs %q", before, after)
			}
		})
	}
}

func TestSerializeTable(t *testing.T) {
	got := SerializeTable([]string{"a", "b"}, [][]string{{"1", "2"}})
	if want := ":::table\na | b\n---\n1 | 2\n:::"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
