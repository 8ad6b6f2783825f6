package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/pdfoutline/internal/outline"
)

// Collector renders a document into positioned text spans.
type Collector interface {
	Collect(ctx context.Context, r io.Reader, filename string) ([]outline.TextSpan, error)
}

// Options tune collector behaviour.
type Options struct {
	// FallbackPdftotext enables the pdftotext engine when the Go PDF
	// engines cannot read a file.
	FallbackPdftotext bool
	// PdftotextBin overrides the pdftotext executable path.
	PdftotextBin string
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".docx":     true,
}

// ForFile returns the appropriate collector for a filename.
func ForFile(filename string, opts Options) (Collector, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFCollector{FallbackPdftotext: opts.FallbackPdftotext, PdftotextBin: opts.PdftotextBin}, nil
	case ".md", ".markdown":
		return &MarkdownCollector{}, nil
	case ".html", ".htm":
		return &HTMLCollector{}, nil
	case ".docx":
		return &DOCXCollector{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Source binds a collector to in-memory file bytes. Any collector error is
// reported as an outline.ErrRendering.
func Source(c Collector, data []byte, filename string) outline.SpanSource {
	return outline.SpanSourceFunc(func(ctx context.Context) ([]outline.TextSpan, error) {
		spans, err := c.Collect(ctx, bytes.NewReader(data), filename)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", outline.ErrRendering, filename, err)
		}
		return spans, nil
	})
}
