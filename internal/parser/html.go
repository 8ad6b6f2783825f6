package parser

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/pdfoutline/internal/outline"
	"golang.org/x/net/html"
)

// HTMLCollector handles HTML files.
type HTMLCollector struct{}

func (p *HTMLCollector) Collect(ctx context.Context, r io.Reader, filename string) ([]outline.TextSpan, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	l := newLayout()
	// <title> goes first, above any heading.
	if title := findTitle(doc); title != "" {
		l.add(collapseSpace(title), titleFontSize)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				l.heading(level, collapseSpace(textContent(n)))
				return
			}

			// Skip non-content elements.
			switch n.Data {
			case "script", "style", "nav", "footer", "header", "title":
				return
			case "pre":
				l.body(textContent(n))
				return
			case "p", "li", "td", "blockquote":
				l.body(collapseSpace(textContent(n)))
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	// Find <body> or use whole document.
	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return l.spans, nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

// collapseSpace folds source line breaks and runs of whitespace.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
