package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/dgallion1/pdfoutline/internal/outline"
)

func TestHTMLCollector_TitleAndHeadings(t *testing.T) {
	input := `<html><head><title>Service
  Handbook</title><style>h1 { color: red }</style></head>
<body>
<nav><h2>Menu</h2></nav>
<h1>Getting Started</h1>
<p>Read this first.</p>
<h2>Install</h2>
<p>Download the
   installer.</p>
<h3>Linux</h3>
<h2>Configure</h2>
</body></html>`

	p := &HTMLCollector{}
	spans, err := p.Collect(context.Background(), strings.NewReader(input), "guide.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range spans {
		if s.Text == "Menu" {
			t.Error("expected nav content to be skipped")
		}
		if strings.Contains(s.Text, "\n") {
			t.Errorf("expected whitespace collapsed, got %q", s.Text)
		}
	}

	res := outline.Extract(spans)
	if res.Title != "Service Handbook" {
		t.Errorf("expected title %q, got %q", "Service Handbook", res.Title)
	}
	want := []string{"H1 Getting Started", "H2 Install", "H3 Linux", "H2 Configure"}
	if len(res.Outline) != len(want) {
		t.Fatalf("expected %d entries, got %d: %+v", len(want), len(res.Outline), res.Outline)
	}
	for i, w := range want {
		got := string(res.Outline[i].Level) + " " + res.Outline[i].Text
		if got != w {
			t.Errorf("entry %d: expected %q, got %q", i, w, got)
		}
	}
}

func TestHTMLCollector_NoBody(t *testing.T) {
	p := &HTMLCollector{}
	spans, err := p.Collect(context.Background(), strings.NewReader(""), "empty.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spans) != 0 {
		t.Errorf("expected no spans, got %d", len(spans))
	}
}
