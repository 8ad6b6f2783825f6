package parser

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/pdfoutline/internal/outline"
)

func TestMergeGlyphs_JoinsRunsAndFlipsY(t *testing.T) {
	glyphs := []glyph{
		{Font: "Helvetica-Bold", Size: 20, X: 72, Y: 700, W: 12, S: "A"},
		{Font: "Helvetica-Bold", Size: 20, X: 84, Y: 700, W: 12, S: "B"},
		// gap of 10 > 0.2*20 inserts a space
		{Font: "Helvetica-Bold", Size: 20, X: 106, Y: 700, W: 12, S: "C"},
		// font change starts a new span on the same baseline
		{Font: "Helvetica", Size: 20, X: 120, Y: 700, W: 12, S: "d"},
		// next line
		{Font: "Helvetica", Size: 10, X: 72, Y: 650, W: 5, S: "body"},
	}
	spans := mergeGlyphs(glyphs, 792, 3)
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d: %+v", len(spans), spans)
	}
	if spans[0].Text != "AB C" {
		t.Errorf("expected %q, got %q", "AB C", spans[0].Text)
	}
	if spans[0].Y != 792-700-20 {
		t.Errorf("expected top-down Y %v, got %v", 792-700-20, spans[0].Y)
	}
	if spans[0].FontName != "Helvetica-Bold" || spans[0].Page != 3 {
		t.Errorf("unexpected span metadata %+v", spans[0])
	}
	if spans[1].Text != "d" || spans[1].FontName != "Helvetica" {
		t.Errorf("unexpected second span %+v", spans[1])
	}
	if spans[2].Y <= spans[0].Y {
		t.Errorf("expected lower baseline to have larger Y, got %v <= %v", spans[2].Y, spans[0].Y)
	}
}

func TestMergeGlyphs_DropsBlankAndNormalizes(t *testing.T) {
	glyphs := []glyph{
		{Font: "F", Size: 12, X: 10, Y: 100, W: 6, S: "   "},
		{Font: "F", Size: 12, X: 10, Y: 50, W: 6, S: "ﬁnal"},
	}
	spans := mergeGlyphs(glyphs, 792, 1)
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d: %+v", len(spans), spans)
	}
	if spans[0].Text != "final" {
		t.Errorf("expected ligature folded to %q, got %q", "final", spans[0].Text)
	}
}

func TestPageTop(t *testing.T) {
	if got := pageTop([]float64{0, 0, 612, 792}, 1); got != 792 {
		t.Errorf("expected 792, got %v", got)
	}
	if got := pageTop(nil, defaultPageTop); got != defaultPageTop {
		t.Errorf("expected fallback %v, got %v", defaultPageTop, got)
	}
}

func TestParseBBoxLayout(t *testing.T) {
	input := `<!DOCTYPE html><html><head><title></title></head><body>
<doc>
  <page width="612.000000" height="792.000000">
    <flow><block>
      <line xMin="72" yMin="70.5" xMax="300" yMax="94.5">
        <word xMin="72" yMin="70.5" xMax="150" yMax="94.5">Annual</word>
        <word xMin="160" yMin="70.5" xMax="300" yMax="94.5">Report</word>
      </line>
      <line xMin="72" yMin="130" xMax="200" yMax="148">
        <word xMin="72" yMin="130" xMax="200" yMax="148">1. Introduction</word>
      </line>
    </block></flow>
  </page>
  <page width="612.000000" height="792.000000">
    <flow><block>
      <line xMin="72" yMin="80" xMax="200" yMax="98">
        <word xMin="72" yMin="80" xMax="200" yMax="98">Methods</word>
      </line>
    </block></flow>
  </page>
</doc></body></html>`

	spans, err := parseBBoxLayout(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d: %+v", len(spans), spans)
	}
	first := spans[0]
	if first.Text != "Annual Report" || first.Y != 70.5 || first.FontSize != 24 || first.Page != 1 {
		t.Errorf("unexpected first span %+v", first)
	}
	if spans[2].Page != 2 || spans[2].Text != "Methods" {
		t.Errorf("unexpected page-2 span %+v", spans[2])
	}

	res := outline.Extract(spans)
	if res.Title != "Annual Report" {
		t.Errorf("expected title %q, got %q", "Annual Report", res.Title)
	}
}

func TestPDFCollector_CorruptInput(t *testing.T) {
	p := &PDFCollector{}
	_, err := p.Collect(context.Background(), strings.NewReader("not a pdf"), "broken.pdf")
	if err == nil {
		t.Fatal("expected error for corrupt pdf")
	}

	src := Source(p, []byte("not a pdf"), "broken.pdf")
	if _, err := src.Spans(context.Background()); !errors.Is(err, outline.ErrRendering) {
		t.Errorf("expected ErrRendering, got %v", err)
	}
}

func TestForFile(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"a.pdf", false},
		{"B.PDF", false},
		{"notes.md", false},
		{"page.htm", false},
		{"letter.docx", false},
		{"data.csv", true},
		{"noext", true},
	}
	for _, tt := range tests {
		_, err := ForFile(tt.name, Options{})
		if (err != nil) != tt.wantErr {
			t.Errorf("ForFile(%q): wantErr=%v, got %v", tt.name, tt.wantErr, err)
		}
		if IsSupportedExtension(tt.name) == tt.wantErr {
			t.Errorf("IsSupportedExtension(%q) disagrees with ForFile", tt.name)
		}
	}
}

func TestDocxHeadingLevel(t *testing.T) {
	tests := []struct {
		style string
		want  int
	}{
		{"Heading1", 1},
		{"heading 2", 2},
		{"Heading6", 6},
		{"Heading7", 0},
		{"Heading10", 0},
		{"Normal", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := docxHeadingLevel(tt.style); got != tt.want {
			t.Errorf("docxHeadingLevel(%q) = %d, want %d", tt.style, got, tt.want)
		}
	}
}

func TestLayout_Paginates(t *testing.T) {
	l := newLayout()
	for i := 0; i < blocksPerPage+1; i++ {
		l.body("line")
	}
	last := l.spans[len(l.spans)-1]
	if last.Page != 2 || last.Y != pageMarginTop {
		t.Errorf("expected block %d to start page 2 at top, got %+v", blocksPerPage+1, last)
	}
}
