package outline

import "testing"

func TestGroupLines_Empty(t *testing.T) {
	if lines := GroupLines(nil); len(lines) != 0 {
		t.Errorf("expected no lines for empty page, got %d", len(lines))
	}
}

func TestGroupLines_ToleranceBoundary(t *testing.T) {
	merged := GroupLines([]TextSpan{
		{Text: "Hello", Y: 100, FontSize: 12, Page: 1},
		{Text: "world", Y: 102, FontSize: 12, Page: 1},
	})
	if len(merged) != 1 {
		t.Fatalf("expected spans 2 apart to merge, got %d lines", len(merged))
	}
	if merged[0].Text != "Hello world" {
		t.Errorf("expected %q, got %q", "Hello world", merged[0].Text)
	}

	split := GroupLines([]TextSpan{
		{Text: "Hello", Y: 100, FontSize: 12, Page: 1},
		{Text: "world", Y: 102.0001, FontSize: 12, Page: 1},
	})
	if len(split) != 2 {
		t.Fatalf("expected spans 2.0001 apart to split, got %d lines", len(split))
	}
}

func TestGroupLines_AnchorIsFirstSpan(t *testing.T) {
	// 101.5 is within tolerance of the 100 anchor; 103 is not, even though it
	// is within tolerance of 101.5.
	lines := GroupLines([]TextSpan{
		{Text: "a", Y: 100, FontSize: 10, Page: 1},
		{Text: "b", Y: 101.5, FontSize: 10, Page: 1},
		{Text: "c", Y: 103, FontSize: 10, Page: 1},
	})
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Text != "a b" || lines[0].Y != 100 {
		t.Errorf("unexpected first line %+v", lines[0])
	}
	if lines[1].Text != "c" || lines[1].Y != 103 {
		t.Errorf("unexpected second line %+v", lines[1])
	}
}

func TestGroupLines_UnsortedInputAndAverage(t *testing.T) {
	lines := GroupLines([]TextSpan{
		{Text: "Body", Y: 200, FontSize: 10, Page: 3},
		{Text: "Big", Y: 50, FontSize: 20, Page: 3},
		{Text: "Small", Y: 51, FontSize: 10, Page: 3},
	})
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Text != "Big Small" {
		t.Errorf("expected %q, got %q", "Big Small", lines[0].Text)
	}
	if lines[0].FontSizeAvg != 15 {
		t.Errorf("expected average size 15, got %v", lines[0].FontSizeAvg)
	}
	if lines[0].Page != 3 {
		t.Errorf("expected page 3, got %d", lines[0].Page)
	}
	if lines[1].Text != "Body" {
		t.Errorf("expected %q, got %q", "Body", lines[1].Text)
	}
}

func TestGroupLines_StableForEqualY(t *testing.T) {
	lines := GroupLines([]TextSpan{
		{Text: "first", Y: 10, FontSize: 10, Page: 1},
		{Text: "second", Y: 10, FontSize: 10, Page: 1},
		{Text: "third", Y: 10, FontSize: 10, Page: 1},
	})
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Text != "first second third" {
		t.Errorf("expected input order preserved, got %q", lines[0].Text)
	}
}

func TestGroupLines_Idempotent(t *testing.T) {
	input := []TextSpan{
		{Text: "Line one", Y: 10, FontSize: 12, Page: 1},
		{Text: "Line two", Y: 30, FontSize: 12, Page: 1},
		{Text: "Line three", Y: 50, FontSize: 11, Page: 1},
	}
	first := GroupLines(input)

	var again []TextSpan
	for _, ln := range first {
		again = append(again, TextSpan{Text: ln.Text, Y: ln.Y, FontSize: ln.FontSizeAvg, Page: ln.Page})
	}
	second := GroupLines(again)

	if len(second) != len(input) {
		t.Fatalf("expected %d lines, got %d", len(input), len(second))
	}
	for i := range second {
		if second[i] != first[i] {
			t.Errorf("line %d changed: %+v -> %+v", i, first[i], second[i])
		}
	}
}

func TestGroupLines_CollapsesDoubleSpaces(t *testing.T) {
	lines := GroupLines([]TextSpan{
		{Text: "Annual ", Y: 10, FontSize: 12, Page: 1},
		{Text: "Report", Y: 10, FontSize: 12, Page: 1},
	})
	if lines[0].Text != "Annual Report" {
		t.Errorf("expected %q, got %q", "Annual Report", lines[0].Text)
	}
}

func TestGroupPages_OrdersPages(t *testing.T) {
	pages := GroupPages([]TextSpan{
		{Text: "p2", Y: 10, FontSize: 12, Page: 2},
		{Text: "p1", Y: 10, FontSize: 12, Page: 1},
		{Text: "p5", Y: 10, FontSize: 12, Page: 5},
	})
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	want := []int{1, 2, 5}
	for i, p := range pages {
		if p[0].Page != want[i] {
			t.Errorf("page %d: expected page number %d, got %d", i, want[i], p[0].Page)
		}
	}
}
