package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Roland-02/List2Letterboxd/internal/entities"
)

// ImportSnapshot is the raw input of an import together with what was parsed from it.
type ImportSnapshot struct {
	Source     string           `json:"source"`
	ReceivedAt time.Time        `json:"received_at"`
	RawText    string           `json:"raw_text"`
	Entries    []entities.Entry `json:"entries"`
}

// Auditor keeps JSON snapshots of raw imports on disk.
type Auditor struct {
	AuditDir string
}

func NewAuditor(auditDir string) *Auditor {
	return &Auditor{
		AuditDir: auditDir,
	}
}

// SaveImport writes a snapshot of an import. A nil Auditor saves nothing.
func (a *Auditor) SaveImport(source, rawText string, entries []entities.Entry) (string, error) {
	if a == nil {
		return "", nil
	}
	return a.SaveJSON(ImportSnapshot{
		Source:     source,
		ReceivedAt: time.Now().UTC(),
		RawText:    rawText,
		Entries:    entries,
	})
}

// SaveJSON saves the provided data as JSON to a file with UUID4 filename
func (a *Auditor) SaveJSON(data any) (string, error) {
	if err := a.ensureAuditDir(); err != nil {
		return "", fmt.Errorf("failed to ensure audit directory: %w", err)
	}

	auditID := uuid.New()
	filename := fmt.Sprintf("%s.json", auditID.String())
	path := filepath.Join(a.AuditDir, filename)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data to JSON: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}

	return filename, nil
}

// ensureAuditDir creates the audit directory if it doesn't exist
func (a *Auditor) ensureAuditDir() error {
	if _, err := os.Stat(a.AuditDir); os.IsNotExist(err) {
		if err := os.MkdirAll(a.AuditDir, 0755); err != nil {
			return fmt.Errorf("failed to create audit directory: %w", err)
		}
	}
	return nil
}
