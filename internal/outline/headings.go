package outline

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// MaxHeadingWords is the longest line, in words, still considered a heading.
const MaxHeadingWords = 12

// Level is an outline heading level.
type Level string

const (
	H1 Level = "H1"
	H2 Level = "H2"
	H3 Level = "H3"
)

// Levels lists the assignable levels from largest font to smallest.
var Levels = []Level{H1, H2, H3}

var sentenceEnd = regexp.MustCompile(`[.!?]\s*$`)

// EndsWithSentencePunctuation reports whether text ends in '.', '!' or '?',
// ignoring trailing whitespace.
func EndsWithSentencePunctuation(text string) bool {
	return sentenceEnd.MatchString(text)
}

// SizeKey is the bucketing key for a font size. Halves round to even.
func SizeKey(size float64) int {
	return int(math.RoundToEven(size))
}

// AssignLevels maps size keys to levels. Keys are ranked descending; the
// three largest get H1, H2 and H3 and the rest are left out.
func AssignLevels(keys []int) map[int]Level {
	ranked := make([]int, len(keys))
	copy(ranked, keys)
	sort.Sort(sort.Reverse(sort.IntSlice(ranked)))

	out := make(map[int]Level, len(Levels))
	for _, k := range ranked {
		if _, seen := out[k]; seen {
			continue
		}
		if len(out) == len(Levels) {
			break
		}
		out[k] = Levels[len(out)]
	}
	return out
}

// isHeadingCandidate applies the prose filters to a line's text.
func isHeadingCandidate(text string) bool {
	if text == "" {
		return false
	}
	if len(strings.Fields(text)) > MaxHeadingWords {
		return false
	}
	return !EndsWithSentencePunctuation(text)
}

// ClassifyHeadings turns page lines into leveled outline entries in reading
// order. Lines whose text is in titleTexts are skipped. The returned slice is
// never nil.
func ClassifyHeadings(pages [][]Line, titleTexts map[string]struct{}) []Entry {
	var candidates []Line
	for _, page := range pages {
		for _, ln := range page {
			if _, ok := titleTexts[ln.Text]; ok {
				continue
			}
			if isHeadingCandidate(ln.Text) {
				candidates = append(candidates, ln)
			}
		}
	}
	if len(candidates) == 0 {
		return []Entry{}
	}

	buckets := make(map[int][]Line)
	var keys []int
	for _, c := range candidates {
		k := SizeKey(c.FontSizeAvg)
		if _, ok := buckets[k]; !ok {
			keys = append(keys, k)
		}
		buckets[k] = append(buckets[k], c)
	}
	levels := AssignLevels(keys)

	sort.Sort(sort.Reverse(sort.IntSlice(keys)))
	entries := make([]Entry, 0, len(candidates))
	for _, k := range keys {
		lvl, ok := levels[k]
		if !ok {
			continue
		}
		for _, ln := range buckets[k] {
			entries = append(entries, Entry{Level: lvl, Text: ln.Text, Page: ln.Page, Y: ln.Y})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Page != entries[j].Page {
			return entries[i].Page < entries[j].Page
		}
		return entries[i].Y < entries[j].Y
	})
	return entries
}
