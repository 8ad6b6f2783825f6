package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/dgallion1/pdfoutline/internal/outline"
	"golang.org/x/net/html"
)

// collectPdftotext runs `pdftotext -bbox-layout` and reads line boxes from
// its XHTML output.
func collectPdftotext(ctx context.Context, bin string, data []byte) ([]outline.TextSpan, error) {
	if bin == "" {
		bin = "pdftotext"
	}
	// pdftotext needs a real file path.
	tmp, err := os.CreateTemp("", "pdfoutline-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	cmd := exec.CommandContext(ctx, bin, "-bbox-layout", tmpPath, "-")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return parseBBoxLayout(bytes.NewReader(out))
}

// parseBBoxLayout converts pdftotext bbox XHTML into spans, one per <line>.
// The line's yMin is the span's top and the mean word height its size.
func parseBBoxLayout(r io.Reader) ([]outline.TextSpan, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse bbox html: %w", err)
	}

	var spans []outline.TextSpan
	page := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "page":
				page++
			case "line":
				if s, ok := lineSpan(n, page); ok {
					spans = append(spans, s)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return spans, nil
}

func lineSpan(line *html.Node, page int) (outline.TextSpan, bool) {
	var words []string
	var heights float64
	for c := line.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "word" {
			continue
		}
		w := cleanText(textContent(c))
		if w == "" {
			continue
		}
		words = append(words, w)
		heights += attrFloat(c, "ymax") - attrFloat(c, "ymin")
	}
	if len(words) == 0 || page == 0 {
		return outline.TextSpan{}, false
	}
	return outline.TextSpan{
		Text:     strings.Join(words, " "),
		Y:        attrFloat(line, "ymin"),
		FontSize: heights / float64(len(words)),
		Page:     page,
	}, true
}

// attrFloat reads a numeric attribute. The HTML parser lowercases names.
func attrFloat(n *html.Node, key string) float64 {
	for _, a := range n.Attr {
		if a.Key == key {
			f, err := strconv.ParseFloat(a.Val, 64)
			if err != nil {
				return 0
			}
			return f
		}
	}
	return 0
}
