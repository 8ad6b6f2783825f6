package outline

import (
	"sort"
	"strings"
)

// LineTolerance is the maximum vertical distance between a span and the
// anchor of the current line for the span to join that line.
const LineTolerance = 2.0

// GroupLines clusters the spans of a single page into visual lines.
// Spans may be in any order; spans sharing a Y keep their input order.
func GroupLines(spans []TextSpan) []Line {
	if len(spans) == 0 {
		return nil
	}

	sorted := make([]TextSpan, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y < sorted[j].Y })

	var lines []Line
	var cluster []TextSpan
	for _, s := range sorted {
		if len(cluster) > 0 && abs(s.Y-cluster[0].Y) > LineTolerance {
			lines = append(lines, closeLine(cluster))
			cluster = cluster[:0]
		}
		cluster = append(cluster, s)
	}
	lines = append(lines, closeLine(cluster))

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Y < lines[j].Y })
	return lines
}

func closeLine(cluster []TextSpan) Line {
	texts := make([]string, len(cluster))
	var sum float64
	for i, s := range cluster {
		texts[i] = s.Text
		sum += s.FontSize
	}
	return Line{
		Y:           cluster[0].Y,
		Text:        joinText(texts),
		FontSizeAvg: sum / float64(len(cluster)),
		Page:        cluster[0].Page,
	}
}

// joinText joins parts with a single space, collapses doubled spaces once
// and trims the result.
func joinText(parts []string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.Join(parts, " "), "  ", " "))
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
