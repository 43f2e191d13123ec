package exporters

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Roland-02/List2Letterboxd/internal/entities"
)

// ExportToFile encodes entries into path, creating the parent directory if
// needed. An existing file is replaced.
func ExportToFile(path string, exporter EntryExporter, entries []entities.Entry) (ExportResult, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return ExportResult{}, fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to create export file: %w", err)
	}

	result, err := exporter.Encode(file, entries)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close export file: %w", closeErr)
	}
	return result, err
}
