package parser

import (
	"bytes"
	"context"

	"github.com/dgallion1/pdfoutline/internal/outline"
	rscpdf "rsc.io/pdf"
)

// collectRSC reads glyphs with rsc.io/pdf, which tolerates some files whose
// cross-reference layout the primary engine rejects.
func collectRSC(ctx context.Context, data []byte) (spans []outline.TextSpan, err error) {
	defer recoverInto(&err)

	reader, err := rscpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		top := pageTop(rscMediaBox(page.V), defaultPageTop)
		var glyphs []glyph
		for _, t := range page.Content().Text {
			glyphs = append(glyphs, glyph{Font: t.Font, Size: t.FontSize, X: t.X, Y: t.Y, W: t.W, S: t.S})
		}
		spans = append(spans, mergeGlyphs(glyphs, top, i)...)
	}
	return spans, nil
}

func rscMediaBox(v rscpdf.Value) []float64 {
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		box := v.Key("MediaBox")
		if box.Kind() == rscpdf.Array && box.Len() == 4 {
			out := make([]float64, 4)
			for i := range out {
				out[i] = box.Index(i).Float64()
			}
			return out
		}
		v = v.Key("Parent")
	}
	return nil
}
