package parsers

import (
	"regexp"
	"strings"
)

var (
	lineBreakPattern = regexp.MustCompile(`\r?\n`)

	// Matches a leading run of bullets or list numbers ("-", "*", "•", "1.", "2)")
	// followed by an optional checkbox: "[ ]", "[x]", "[X]", "[✓]" or a bare check glyph.
	listMarkerPattern = regexp.MustCompile(
		`^(?:(?:[-*+•‣◦▪▸►–—]|\d{1,3}[.)])\s*)*(?:(?:\[\s*[xX✓✔✗]?\s*\]|[✓✔☑☐☒✅])\s*)?`,
	)

	// Legacy grammar: "[x] Title - [ ] Other" style lists pasted as one line.
	// The "]" stays with the preceding chunk.
	inlineSplitPattern = regexp.MustCompile(`\]\s*-\s*`)
)

// SegmentLines splits raw text into ordered candidate entry lines.
//
// Lines are trimmed, blank lines are discarded and one leading marker group
// is stripped from each line. Checkbox state is discarded. When
// legacyInlineSplit is set, each line is also split after a "]" followed by
// a hyphen.
func SegmentLines(text string, legacyInlineSplit bool) []string {
	var lines []string
	for _, raw := range lineBreakPattern.Split(text, -1) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		chunks := []string{raw}
		if legacyInlineSplit {
			chunks = splitInline(raw)
		}

		for _, chunk := range chunks {
			line := StripListMarker(strings.TrimSpace(chunk))
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// StripListMarker removes one bullet/numbering/checkbox group from the start of line.
func StripListMarker(line string) string {
	return strings.TrimSpace(listMarkerPattern.ReplaceAllString(line, ""))
}

func splitInline(line string) []string {
	var parts []string
	for {
		loc := inlineSplitPattern.FindStringIndex(line)
		if loc == nil {
			break
		}
		parts = append(parts, line[:loc[0]+1])
		line = line[loc[1]:]
	}
	return append(parts, line)
}
