package parser

import (
	"math"
	"strings"

	"github.com/dgallion1/pdfoutline/internal/outline"
)

// defaultPageTop is the top edge of a US Letter page, used when a page has
// no readable MediaBox.
const defaultPageTop = 792.0

const (
	// Same-baseline tolerance, in points.
	baselineEpsilon = 0.5
	// Horizontal gap, in multiples of the font size, that becomes a space.
	spaceGapFactor = 0.2
	// Horizontal gap, in multiples of the font size, that ends a span.
	spanBreakFactor = 3.0
)

// glyph is one text-showing operation as reported by a PDF engine. Y is the
// baseline in PDF user space, growing upward.
type glyph struct {
	Font string
	Size float64
	X    float64
	Y    float64
	W    float64
	S    string
}

// pageTop returns the upper edge of a MediaBox [llx lly urx ury].
func pageTop(box []float64, fallback float64) float64 {
	if len(box) != 4 {
		return fallback
	}
	return math.Max(box[1], box[3])
}

// mergeGlyphs joins consecutive glyphs that share a font, size and baseline
// into spans, converting the baseline to a top-down top edge.
func mergeGlyphs(glyphs []glyph, top float64, page int) []outline.TextSpan {
	var spans []outline.TextSpan
	var cur *glyph
	var text strings.Builder

	flush := func() {
		if cur == nil {
			return
		}
		if s := cleanText(text.String()); s != "" {
			spans = append(spans, outline.TextSpan{
				Text:     s,
				Y:        top - cur.Y - cur.Size,
				FontSize: cur.Size,
				FontName: cur.Font,
				Page:     page,
			})
		}
		cur = nil
		text.Reset()
	}

	var end float64
	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		if cur != nil {
			gap := g.X - end
			sameRun := g.Font == cur.Font && g.Size == cur.Size &&
				math.Abs(g.Y-cur.Y) <= baselineEpsilon &&
				gap > -spaceGapFactor*g.Size && gap <= spanBreakFactor*g.Size
			if !sameRun {
				flush()
			} else if gap > spaceGapFactor*g.Size && !strings.HasSuffix(text.String(), " ") {
				text.WriteByte(' ')
			}
		}
		if cur == nil {
			first := g
			cur = &first
		}
		text.WriteString(g.S)
		end = g.X + g.W
	}
	flush()
	return spans
}
