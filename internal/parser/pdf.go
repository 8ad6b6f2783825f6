package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dgallion1/pdfoutline/internal/outline"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFCollector handles PDF files. It tries the ledongthuc engine first, then
// rsc.io/pdf, then pdftotext if enabled.
type PDFCollector struct {
	FallbackPdftotext bool
	PdftotextBin      string
}

func (p *PDFCollector) Collect(ctx context.Context, r io.Reader, filename string) ([]outline.TextSpan, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	spans, err := collectLedongthuc(ctx, data)
	if err == nil {
		return spans, nil
	}
	errs := []error{fmt.Errorf("ledongthuc: %w", err)}

	spans, err = collectRSC(ctx, data)
	if err == nil {
		return spans, nil
	}
	errs = append(errs, fmt.Errorf("rsc: %w", err))

	if p.FallbackPdftotext {
		spans, err = collectPdftotext(ctx, p.PdftotextBin, data)
		if err == nil {
			return spans, nil
		}
		errs = append(errs, fmt.Errorf("pdftotext: %w", err))
	}
	return nil, fmt.Errorf("extract pdf spans: %w", errors.Join(errs...))
}

func collectLedongthuc(ctx context.Context, data []byte) (spans []outline.TextSpan, err error) {
	defer recoverInto(&err)

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		top := pageTop(mediaBox(page.V), defaultPageTop)
		var glyphs []glyph
		for _, t := range page.Content().Text {
			glyphs = append(glyphs, glyph{Font: t.Font, Size: t.FontSize, X: t.X, Y: t.Y, W: t.W, S: t.S})
		}
		spans = append(spans, mergeGlyphs(glyphs, top, i)...)
	}
	return spans, nil
}

// mediaBox walks up the page tree until it finds a MediaBox entry.
func mediaBox(v pdflib.Value) []float64 {
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		box := v.Key("MediaBox")
		if box.Kind() == pdflib.Array && box.Len() == 4 {
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

// recoverInto turns a panic from a PDF library into an error.
func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("pdf library panic: %v", r)
	}
}
