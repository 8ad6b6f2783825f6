package outline

import (
	"regexp"
	"sort"
	"unicode/utf8"
)

// titleGapFactor bounds the gap between the approximate bottom of the
// previous title line (Y + size) and the top of the next one, in multiples
// of the next line's font size.
const titleGapFactor = 1.5

var numericPrefix = regexp.MustCompile(`^\s*\d+(\.|$)`)

// IsNumericPrefixed reports whether text starts with a section number such
// as "1." or consists of a bare number.
func IsNumericPrefixed(text string) bool {
	return numericPrefix.MatchString(text)
}

// DetectTitle finds the title block among the lines of page 1 and returns
// the joined title together with the member lines. The block is empty when
// no seed line qualifies.
func DetectTitle(lines []Line) (string, []Line) {
	if len(lines) == 0 {
		return UntitledDocument, nil
	}

	seed, ok := titleSeed(lines)
	if !ok {
		return lines[0].Text, nil
	}

	var block []Line
	var bottom float64
	for _, ln := range lines {
		if ln.FontSizeAvg != seed.FontSizeAvg || IsNumericPrefixed(ln.Text) {
			if len(block) > 0 {
				break
			}
			continue
		}
		if len(block) > 0 && ln.Y-bottom >= titleGapFactor*ln.FontSizeAvg {
			break
		}
		block = append(block, ln)
		bottom = ln.Y + ln.FontSizeAvg
	}

	texts := make([]string, len(block))
	for i, ln := range block {
		texts[i] = ln.Text
	}
	title := joinText(texts)
	if title == "" {
		title = lines[0].Text
	}
	return title, block
}

// titleSeed picks the largest, topmost line that is not numbered and has
// more than two characters.
func titleSeed(lines []Line) (Line, bool) {
	order := make([]Line, len(lines))
	copy(order, lines)
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].FontSizeAvg != order[j].FontSizeAvg {
			return order[i].FontSizeAvg > order[j].FontSizeAvg
		}
		return order[i].Y < order[j].Y
	})
	for _, ln := range order {
		if !IsNumericPrefixed(ln.Text) && utf8.RuneCountInString(ln.Text) > 2 {
			return ln, true
		}
	}
	return Line{}, false
}
