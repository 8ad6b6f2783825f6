// Package outline infers a document title and an H1/H2/H3 heading outline
// from positioned text spans, using font size and vertical geometry only.
package outline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
)

// UntitledDocument is the title used when page 1 has no lines at all.
const UntitledDocument = "Untitled Document"

// ErrRendering marks a failure of the span collector to decode a document.
var ErrRendering = errors.New("rendering failure")

// TextSpan is one run of text sharing a font and size, as reported by the
// renderer. Y is the top edge in page-local coordinates growing downward.
type TextSpan struct {
	Text     string
	Y        float64
	FontSize float64
	FontName string
	Page     int // 1-based
}

// Line is one visual line reconstructed from spans on a page.
type Line struct {
	Y           float64
	Text        string
	FontSizeAvg float64
	Page        int
}

// Entry is a single outline item.
type Entry struct {
	Level Level   `json:"level"`
	Text  string  `json:"text"`
	Page  int     `json:"page"`
	Y     float64 `json:"-"`
}

// Result is the title and outline for one document.
type Result struct {
	Title   string  `json:"title"`
	Outline []Entry `json:"outline"`
}

// Degraded is the result reported for a document that could not be rendered.
func Degraded() Result {
	return Result{Title: "", Outline: []Entry{}}
}

// IsDegraded reports whether r stands in for a document that failed to
// render. A successful extraction always has a non-empty title.
func (r Result) IsDegraded() bool {
	return r.Title == ""
}

// SpanSource produces the spans of one document.
type SpanSource interface {
	Spans(ctx context.Context) ([]TextSpan, error)
}

// SpanSourceFunc adapts a function to SpanSource.
type SpanSourceFunc func(ctx context.Context) ([]TextSpan, error)

func (f SpanSourceFunc) Spans(ctx context.Context) ([]TextSpan, error) { return f(ctx) }

// Extract runs line reconstruction, title detection and heading
// classification over an already collected span set.
func Extract(spans []TextSpan) Result {
	pages := GroupPages(spans)

	var firstPage []Line
	if len(pages) > 0 && len(pages[0]) > 0 && pages[0][0].Page == 1 {
		firstPage = pages[0]
	}
	title, block := DetectTitle(firstPage)

	exclude := make(map[string]struct{}, len(block))
	for _, ln := range block {
		exclude[ln.Text] = struct{}{}
	}

	return Result{
		Title:   title,
		Outline: ClassifyHeadings(pages, exclude),
	}
}

// Run collects spans from src and extracts the outline. It never returns an
// error: collection failures and panics are logged and produce Degraded().
func Run(ctx context.Context, src SpanSource, log *slog.Logger) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("outline extraction panicked", "panic", fmt.Sprint(r))
			res = Degraded()
		}
	}()

	spans, err := src.Spans(ctx)
	if err != nil {
		log.Error("collect spans failed", "error", err)
		return Degraded()
	}
	if len(spans) == 0 {
		log.Warn("document has no extractable text")
	}
	return Extract(spans)
}

// GroupPages splits spans by page and reconstructs lines for each page.
// Pages are returned in ascending page order; pages without spans are absent.
func GroupPages(spans []TextSpan) [][]Line {
	byPage := make(map[int][]TextSpan)
	for _, s := range spans {
		byPage[s.Page] = append(byPage[s.Page], s)
	}
	nums := make([]int, 0, len(byPage))
	for p := range byPage {
		nums = append(nums, p)
	}
	sort.Ints(nums)

	pages := make([][]Line, 0, len(nums))
	for _, p := range nums {
		pages = append(pages, GroupLines(byPage[p]))
	}
	return pages
}
