package parsers

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// RatingSpan describes where a rating token was recognized in a line and its
// value on the 0-10 scale. Start and End are byte offsets.
type RatingSpan struct {
	Start  int
	End    int
	Tenths float64
}

var (
	// "8/10", "(4/5)", "7.5/10", "85/100". Denominators are tried longest first and
	// must end at a word boundary so "5/50" is not read as "5/5".
	fractionalPattern = regexp.MustCompile(`\(?(\d+(?:\.\d)?)/(100|10|5)\b\)?`)

	// "★★★", "★★★½", "★★★ 1/2", "★★★.5"
	starPattern = regexp.MustCompile(`((?:★|⭐\x{FE0F}?){1,5})(?:\s*(½|1/2|\.5))?`)
)

// FindFractional returns the first "value/scale" token in line, converted to
// the 0-10 scale. A first match whose converted value falls outside [0, 10]
// counts as no match.
func FindFractional(line string) (*RatingSpan, bool) {
	m := fractionalPattern.FindStringSubmatchIndex(line)
	if m == nil {
		return nil, false
	}

	value, err := strconv.ParseFloat(line[m[2]:m[3]], 64)
	if err != nil {
		return nil, false
	}

	switch line[m[4]:m[5]] {
	case "5":
		value *= 2
	case "100":
		value /= 10
	}

	if value < 0 || value > 10 {
		return nil, false
	}
	return &RatingSpan{Start: m[0], End: m[1], Tenths: value}, true
}

// FindStars returns the first run of one to five star glyphs in line, with an
// optional half indicator, converted to the 0-10 scale.
func FindStars(line string) (*RatingSpan, bool) {
	m := starPattern.FindStringSubmatchIndex(line)
	if m == nil {
		return nil, false
	}

	glyphs := line[m[2]:m[3]]
	stars := float64(strings.Count(glyphs, "★") + strings.Count(glyphs, "⭐"))
	if m[4] >= 0 {
		stars += 0.5
	}
	return &RatingSpan{Start: m[0], End: m[1], Tenths: stars * 2}, true
}

// ChooseRating picks between the two grammars. The fractional match wins by
// default; the star match only wins when it starts strictly earlier.
func ChooseRating(fractional, stars *RatingSpan) *RatingSpan {
	switch {
	case fractional == nil:
		return stars
	case stars == nil:
		return fractional
	case stars.Start < fractional.Start:
		return stars
	default:
		return fractional
	}
}

// ResolveRating runs both grammars over line and returns the winning span, or nil.
func ResolveRating(line string) *RatingSpan {
	fractional, _ := FindFractional(line)
	stars, _ := FindStars(line)
	return ChooseRating(fractional, stars)
}

// NormalizeRating maps a 0-10 value onto the public 0-5 half-step scale.
// One unit on the 0-10 scale is one half step, so the value is rounded to the
// nearest unit before halving. Zero (and a nil span) means no rating.
func NormalizeRating(span *RatingSpan) *float64 {
	if span == nil {
		return nil
	}
	rating := math.Round(span.Tenths) / 2
	if rating <= 0 {
		return nil
	}
	if rating > 5 {
		rating = 5
	}
	return &rating
}
