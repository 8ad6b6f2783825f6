package outline

import "testing"

func TestIsNumericPrefixed(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"1. Scope", true},
		{"  12.3 Results", true},
		{"42", true},
		{"2", true},
		{"3 Methods", false},
		{"Chapter 1", false},
		{"1990s in review", false},
		{"", false},
		{"Introduction", false},
	}
	for _, tt := range tests {
		if got := IsNumericPrefixed(tt.text); got != tt.want {
			t.Errorf("IsNumericPrefixed(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestDetectTitle_NoLines(t *testing.T) {
	title, block := DetectTitle(nil)
	if title != UntitledDocument {
		t.Errorf("expected %q, got %q", UntitledDocument, title)
	}
	if len(block) != 0 {
		t.Errorf("expected empty block, got %d lines", len(block))
	}
}

func TestDetectTitle_SingleLine(t *testing.T) {
	lines := []Line{
		{Y: 10, Text: "Annual Report", FontSizeAvg: 24, Page: 1},
		{Y: 60, Text: "1. Introduction", FontSizeAvg: 18, Page: 1},
	}
	title, block := DetectTitle(lines)
	if title != "Annual Report" {
		t.Errorf("expected %q, got %q", "Annual Report", title)
	}
	if len(block) != 1 {
		t.Fatalf("expected 1 block line, got %d", len(block))
	}
}

func TestDetectTitle_MultiLineContiguous(t *testing.T) {
	lines := []Line{
		{Y: 10, Text: "Understanding the", FontSizeAvg: 20, Page: 1},
		{Y: 35, Text: "Modern Data Stack", FontSizeAvg: 20, Page: 1},
		{Y: 80, Text: "By the authors", FontSizeAvg: 12, Page: 1},
	}
	title, block := DetectTitle(lines)
	if title != "Understanding the Modern Data Stack" {
		t.Errorf("unexpected title %q", title)
	}
	if len(block) != 2 {
		t.Errorf("expected 2 block lines, got %d", len(block))
	}
}

func TestDetectTitle_GapStopsGrowth(t *testing.T) {
	// bottom of first line is 30; 30 + 1.5*20 = 60, so a line at 60 is too far.
	lines := []Line{
		{Y: 10, Text: "Main Title", FontSizeAvg: 20, Page: 1},
		{Y: 60, Text: "Running Header", FontSizeAvg: 20, Page: 1},
	}
	title, block := DetectTitle(lines)
	if title != "Main Title" {
		t.Errorf("expected %q, got %q", "Main Title", title)
	}
	if len(block) != 1 {
		t.Errorf("expected 1 block line, got %d", len(block))
	}

	lines[1].Y = 59.9
	title, _ = DetectTitle(lines)
	if title != "Main Title Running Header" {
		t.Errorf("expected line just inside the gap to join, got %q", title)
	}
}

func TestDetectTitle_DifferentSizeTerminatesBlock(t *testing.T) {
	lines := []Line{
		{Y: 10, Text: "Title Part One", FontSizeAvg: 20, Page: 1},
		{Y: 32, Text: "subtitle", FontSizeAvg: 14, Page: 1},
		{Y: 50, Text: "Title Part Two", FontSizeAvg: 20, Page: 1},
	}
	title, _ := DetectTitle(lines)
	if title != "Title Part One" {
		t.Errorf("expected growth to stop at size change, got %q", title)
	}
}

func TestDetectTitle_SkipsLinesBeforeBlock(t *testing.T) {
	lines := []Line{
		{Y: 5, Text: "Confidential", FontSizeAvg: 9, Page: 1},
		{Y: 40, Text: "Real Title", FontSizeAvg: 22, Page: 1},
	}
	title, block := DetectTitle(lines)
	if title != "Real Title" {
		t.Errorf("expected %q, got %q", "Real Title", title)
	}
	if len(block) != 1 || block[0].Text != "Real Title" {
		t.Errorf("unexpected block %+v", block)
	}
}

func TestDetectTitle_NumericNeverSeed(t *testing.T) {
	lines := []Line{
		{Y: 10, Text: "1. Scope", FontSizeAvg: 24, Page: 1},
		{Y: 50, Text: "Project Charter", FontSizeAvg: 24, Page: 1},
	}
	title, block := DetectTitle(lines)
	if title != "Project Charter" {
		t.Errorf("expected non-numeric seed, got %q", title)
	}
	for _, ln := range block {
		if IsNumericPrefixed(ln.Text) {
			t.Errorf("numbered line %q in title block", ln.Text)
		}
	}
}

func TestDetectTitle_AllNumericFallsBackToFirstLine(t *testing.T) {
	lines := []Line{
		{Y: 10, Text: "1. Scope", FontSizeAvg: 24, Page: 1},
		{Y: 50, Text: "2. Terms", FontSizeAvg: 24, Page: 1},
		{Y: 90, Text: "ab", FontSizeAvg: 10, Page: 1},
	}
	title, block := DetectTitle(lines)
	if title != "1. Scope" {
		t.Errorf("expected fallback to first line, got %q", title)
	}
	if len(block) != 0 {
		t.Errorf("expected empty block on fallback, got %d", len(block))
	}
}

func TestDetectTitle_SeedFallsToSmallerSize(t *testing.T) {
	lines := []Line{
		{Y: 10, Text: "7", FontSizeAvg: 30, Page: 1},
		{Y: 50, Text: "Field Guide", FontSizeAvg: 18, Page: 1},
	}
	title, _ := DetectTitle(lines)
	if title != "Field Guide" {
		t.Errorf("expected %q, got %q", "Field Guide", title)
	}
}
