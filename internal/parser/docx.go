package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/pdfoutline/internal/outline"
	"github.com/fumiama/go-docx"
)

// DOCXCollector handles .docx files.
type DOCXCollector struct{}

func (p *DOCXCollector) Collect(ctx context.Context, r io.Reader, filename string) ([]outline.TextSpan, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	l := newLayout()
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if text == "" {
			continue
		}
		switch style := docxStyle(para); {
		case strings.EqualFold(style, "Title"):
			l.add(text, titleFontSize)
		case docxHeadingLevel(style) > 0:
			l.heading(docxHeadingLevel(style), text)
		default:
			l.body(text)
		}
	}
	return l.spans, nil
}

func docxStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}

// docxHeadingLevel accepts both "Heading1" and "heading 1" style ids.
func docxHeadingLevel(style string) int {
	s := strings.ToLower(strings.ReplaceAll(style, " ", ""))
	if !strings.HasPrefix(s, "heading") || len(s) != len("heading")+1 {
		return 0
	}
	d := s[len(s)-1]
	if d < '1' || d > '6' {
		return 0
	}
	return int(d - '0')
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
