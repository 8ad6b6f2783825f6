package parser

import (
	"strings"

	"github.com/dgallion1/pdfoutline/internal/outline"
)

// Structured formats carry heading levels instead of geometry. They are laid
// out onto synthetic pages so the same outline heuristic applies to them.
const (
	bodyFontSize  = 11.0
	titleFontSize = 28.0
	lineLeading   = 1.2
	pageMarginTop = 72.0
	blocksPerPage = 50
	syntheticFont = "synthetic"
)

// headingFontSize maps an h1–h6 level to a synthetic font size.
func headingFontSize(level int) float64 {
	switch level {
	case 1:
		return 24
	case 2:
		return 18
	case 3:
		return 15
	case 4:
		return 13
	case 5, 6:
		return 12
	}
	return bodyFontSize
}

// layout places text blocks top to bottom on synthetic pages.
type layout struct {
	spans  []outline.TextSpan
	y      float64
	page   int
	blocks int
}

func newLayout() *layout {
	return &layout{y: pageMarginTop, page: 1}
}

// add places each non-empty line of text as its own span.
func (l *layout) add(text string, size float64) {
	for _, ln := range strings.Split(text, "\n") {
		ln = cleanText(ln)
		if ln == "" {
			continue
		}
		if l.blocks == blocksPerPage {
			l.page++
			l.blocks = 0
			l.y = pageMarginTop
		}
		l.spans = append(l.spans, outline.TextSpan{
			Text:     ln,
			Y:        l.y,
			FontSize: size,
			FontName: syntheticFont,
			Page:     l.page,
		})
		l.y += size * lineLeading
		l.blocks++
	}
}

func (l *layout) heading(level int, text string) {
	l.add(text, headingFontSize(level))
}

func (l *layout) body(text string) {
	l.add(text, bodyFontSize)
}
