package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Roland-02/List2Letterboxd/internal/database/audit"
	"github.com/Roland-02/List2Letterboxd/internal/entities"
)

// Service provides high-level audit logging functionality.
// A nil *Service is valid and records nothing.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	if s == nil {
		return nil
	}
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	if s == nil {
		return
	}
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// LogImport records the creation of an import session.
func (s *Service) LogImport(sessionID uint, source string, entryCount int, err error) {
	event := sessionEvent(entities.AuditEventImport, source+"_import", sessionID, err)
	event.Description = fmt.Sprintf("Parsed %d entries from %s", entryCount, source)
	event.Metadata = encodeMetadata(map[string]any{"entry_count": entryCount})
	s.LogAsync(event)
}

// LogEnrich records the outcome of matching a session against the film database.
func (s *Service) LogEnrich(sessionID uint, resolved, unresolved, dropped int, err error) {
	event := sessionEvent(entities.AuditEventEnrich, "session_enrich", sessionID, err)
	event.Description = fmt.Sprintf("Resolved %d entries, %d unresolved, %d dropped", resolved, unresolved, dropped)
	event.Metadata = encodeMetadata(map[string]any{
		"resolved":   resolved,
		"unresolved": unresolved,
		"dropped":    dropped,
	})
	s.LogAsync(event)
}

// LogExport records a CSV export of a session.
func (s *Service) LogExport(sessionID uint, rowsWritten int, err error) {
	event := sessionEvent(entities.AuditEventExport, "session_export", sessionID, err)
	event.Description = fmt.Sprintf("Exported %d rows", rowsWritten)
	s.LogAsync(event)
}

// LogDelete records a manual session deletion.
func (s *Service) LogDelete(sessionID uint) {
	event := sessionEvent(entities.AuditEventDelete, "session_delete", sessionID, nil)
	event.Description = fmt.Sprintf("Deleted import session %d", sessionID)
	s.LogAsync(event)
}

// LogRetention records a retention purge.
func (s *Service) LogRetention(deleted int64, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventRetention,
		Action:      "session_purge",
		Description: fmt.Sprintf("Purged %d import sessions", deleted),
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events, optionally filtered by type.
func (s *Service) GetEvents(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(eventType, limit, offset)
}

// GetSessionHistory returns every event recorded for one import session.
func (s *Service) GetSessionHistory(sessionID uint) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsForSession(sessionID)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	if s == nil {
		return 0, nil
	}
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

func sessionEvent(eventType entities.AuditEventType, action string, sessionID uint, err error) *entities.AuditEvent {
	event := &entities.AuditEvent{
		EventType:  eventType,
		Action:     action,
		EntityType: audit.SessionEntityType,
		Status:     entities.AuditStatusSuccess,
	}
	if sessionID > 0 {
		id := sessionID
		event.EntityID = &id
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	return event
}

func encodeMetadata(metadata map[string]any) string {
	mdBytes, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(mdBytes)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
