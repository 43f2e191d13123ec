package parsers

import (
	"regexp"
	"strings"
	"unicode"
)

// Characters trimmed from the edges of the title and review regions.
// Interior punctuation is kept: "Mission: Impossible" or "Face/Off" are titles.
const edgeDelimiters = "-‐‑‒–—―−:|,;."

var (
	emptyParensPattern = regexp.MustCompile(`\(\s*\)`)

	// Standalone separators used to recover a title that follows the rating,
	// as in "4/10 - Title - Review".
	titleSeparators = []string{" - ", " – ", " — ", " | "}
)

// SplitTitleReview partitions line around the rating span into a title and an
// optional review. With a nil span the whole line is the title region.
// An empty title means the line should be dropped.
func SplitTitleReview(line string, span *RatingSpan) (string, *string) {
	before, after := line, ""
	if span != nil {
		before, after = line[:span.Start], line[span.End:]
	}
	before, after = dropParenRemnant(before, after)

	title := cleanRegion(before)
	rest := cleanRegion(after)
	if title == "" {
		title, rest = splitAtSeparator(rest)
	}
	return title, optionalText(rest)
}

// cleanRegion blanks out empty "()" pairs and trims delimiter runs from both ends.
func cleanRegion(s string) string {
	s = emptyParensPattern.ReplaceAllString(s, " ")
	return strings.TrimFunc(s, isEdgeDelimiter)
}

func isEdgeDelimiter(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(edgeDelimiters, r)
}

// dropParenRemnant removes a "(" ending the before region together with a ")"
// starting the after region: the pair that enclosed a spaced rating such as "( 8/10 )".
func dropParenRemnant(before, after string) (string, string) {
	b := strings.TrimRightFunc(before, unicode.IsSpace)
	a := strings.TrimLeftFunc(after, unicode.IsSpace)
	if strings.HasSuffix(b, "(") && strings.HasPrefix(a, ")") {
		return b[:len(b)-1] + " ", " " + a[1:]
	}
	return before, after
}

// splitAtSeparator takes the shortest prefix of s ending at a standalone
// separator as the title; the remainder becomes the review.
func splitAtSeparator(s string) (string, string) {
	cut, width := -1, 0
	for _, sep := range titleSeparators {
		if idx := strings.Index(s, sep); idx >= 0 && (cut < 0 || idx < cut) {
			cut, width = idx, len(sep)
		}
	}
	if cut < 0 {
		return s, ""
	}
	return cleanRegion(s[:cut]), cleanRegion(s[cut+width:])
}

func optionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
