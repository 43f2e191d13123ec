package exporters

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Roland-02/List2Letterboxd/internal/entities"
)

const (
	DefaultBreakMarker = "<br>"
	LetterboxdFileName = "letterboxd-import.csv"
)

var letterboxdHeader = []string{"tmdbID", "Title", "Rating", "Review"}

// LetterboxdCSV encodes entries in the Letterboxd bulk import CSV format.
// Only entries carrying a matched id are written.
type LetterboxdCSV struct {
	breakMarker string
	lineBreaks  *strings.Replacer
}

var _ EntryExporter = (*LetterboxdCSV)(nil)

// NewLetterboxdCSV creates an encoder that replaces review line breaks with
// breakMarker. An empty marker selects DefaultBreakMarker.
func NewLetterboxdCSV(breakMarker string) *LetterboxdCSV {
	if breakMarker == "" {
		breakMarker = DefaultBreakMarker
	}
	return &LetterboxdCSV{
		breakMarker: breakMarker,
		lineBreaks:  strings.NewReplacer("\r\n", breakMarker, "\r", breakMarker, "\n", breakMarker),
	}
}

// Encode writes the header and one row per resolved entry, in input order.
func (e *LetterboxdCSV) Encode(w io.Writer, entries []entities.Entry) (ExportResult, error) {
	result := ExportResult{}
	writer := csv.NewWriter(w)

	if err := writer.Write(letterboxdHeader); err != nil {
		return result, fmt.Errorf("write csv header: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsResolved() {
			result.EntriesSkipped++
			continue
		}
		if err := writer.Write(e.row(entry)); err != nil {
			return result, fmt.Errorf("write csv row for %q: %w", entry.Title, err)
		}
		result.RowsWritten++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return result, fmt.Errorf("flush csv: %w", err)
	}
	return result, nil
}

// Render encodes entries into a string.
func (e *LetterboxdCSV) Render(entries []entities.Entry) (string, ExportResult, error) {
	var buf bytes.Buffer
	result, err := e.Encode(&buf, entries)
	if err != nil {
		return "", result, err
	}
	return buf.String(), result, nil
}

func (e *LetterboxdCSV) row(entry entities.Entry) []string {
	rating := ""
	if entry.Rating != nil {
		rating = strconv.FormatFloat(*entry.Rating, 'f', -1, 64)
	}
	review := ""
	if entry.Review != nil {
		review = e.lineBreaks.Replace(*entry.Review)
	}
	return []string{
		strconv.FormatInt(*entry.MatchedID, 10),
		entry.Title,
		rating,
		review,
	}
}

// BreakMarker returns the text that replaces review line breaks.
func (e *LetterboxdCSV) BreakMarker() string {
	return e.breakMarker
}
