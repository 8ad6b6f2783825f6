package parser

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// cleanText folds compatibility characters (ligatures, full-width forms,
// non-breaking spaces) and trims the result.
func cleanText(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}
