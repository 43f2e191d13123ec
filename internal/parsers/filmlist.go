package parsers

import (
	"fmt"
	"io"

	"github.com/Roland-02/List2Letterboxd/internal/entities"
)

// Options tunes the film list grammar.
type Options struct {
	// LegacyInlineSplit enables the older grammar that also splits a single
	// line into several entries on a "]" followed by a hyphen. Newline-only
	// splitting is the default.
	LegacyInlineSplit bool
}

// FilmListParser turns free-text film lists into entries.
// Parsing never fails: a line without a recognizable rating becomes a
// title-only entry, and lines that clean down to nothing are dropped.
type FilmListParser struct {
	options Options
}

func NewFilmListParser(opts Options) *FilmListParser {
	return &FilmListParser{options: opts}
}

// Parse converts text into entries in input line order.
func (p *FilmListParser) Parse(text string) []entities.Entry {
	results := []entities.Entry{}
	for _, line := range SegmentLines(text, p.options.LegacyInlineSplit) {
		if entry, ok := ParseLine(line); ok {
			results = append(results, entry)
		}
	}
	return results
}

// ParseReader reads all of r and parses it. Only read failures are reported.
func (p *FilmListParser) ParseReader(r io.Reader) ([]entities.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading film list: %w", err)
	}
	return p.Parse(string(data)), nil
}

// ParseLine parses one already segmented line. It returns false when the
// line has no title left after the rating and delimiters are removed.
func ParseLine(line string) (entities.Entry, bool) {
	span := ResolveRating(line)
	title, review := SplitTitleReview(line, span)
	if title == "" {
		return entities.Entry{}, false
	}
	return entities.Entry{
		Title:  title,
		Rating: NormalizeRating(span),
		Review: review,
	}, true
}
