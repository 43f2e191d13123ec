package exporters

import (
	"io"

	"github.com/Roland-02/List2Letterboxd/internal/entities"
)

// EntryExporter writes a list of entries in some import format.
type EntryExporter interface {
	Encode(w io.Writer, entries []entities.Entry) (ExportResult, error)
}

type ExportResult struct {
	RowsWritten    int `json:"rows_written"`
	EntriesSkipped int `json:"entries_skipped"`
}
