package audit

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	auditRepo "github.com/Roland-02/List2Letterboxd/internal/database/audit"
	"github.com/Roland-02/List2Letterboxd/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "audit.db")), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	repo := auditRepo.NewRepository(db)
	svc := NewService(repo)

	return svc, db
}

func waitForAction(t *testing.T, db *gorm.DB, action string) entities.AuditEvent {
	t.Helper()
	var event entities.AuditEvent
	require.Eventually(t, func() bool {
		return db.Where("action = ?", action).First(&event).Error == nil
	}, time.Second, 10*time.Millisecond)
	return event
}

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventImport,
		Action:      "test_import",
		Description: "Test import event",
		Status:      entities.AuditStatusSuccess,
	}

	err := svc.Log(event)
	require.NoError(t, err)

	var saved entities.AuditEvent
	err = db.First(&saved, event.ID).Error
	require.NoError(t, err)
	assert.Equal(t, "test_import", saved.Action)
}

func TestService_LogImport(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogImport(7, "api", 12, nil)

	event := waitForAction(t, db, "api_import")
	assert.Equal(t, entities.AuditStatusSuccess, event.Status)
	assert.Equal(t, "Parsed 12 entries from api", event.Description)
	assert.Contains(t, event.Metadata, "entry_count")
	require.NotNil(t, event.EntityID)
	assert.Equal(t, uint(7), *event.EntityID)
	assert.Equal(t, auditRepo.SessionEntityType, event.EntityType)
}

func TestService_LogEnrich(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogEnrich(3, 0, 4, 0, errors.New("match service error: HTTP 502"))

	event := waitForAction(t, db, "session_enrich")
	assert.Equal(t, entities.AuditStatusFailed, event.Status)
	assert.Contains(t, event.ErrorMsg, "HTTP 502")
	assert.Contains(t, event.Metadata, `"unresolved":4`)

	history, err := svc.GetSessionHistory(3)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestService_LogExportAndRetention(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogExport(5, 2, nil)
	export := waitForAction(t, db, "session_export")
	assert.Equal(t, "Exported 2 rows", export.Description)

	svc.LogRetention(3, nil)
	purge := waitForAction(t, db, "session_purge")
	assert.Equal(t, entities.AuditEventRetention, purge.EventType)
	assert.Nil(t, purge.EntityID)

	svc.LogDelete(9)
	deletion := waitForAction(t, db, "session_delete")
	assert.Equal(t, entities.AuditEventDelete, deletion.EventType)
}

func TestService_DeleteOldEvents(t *testing.T) {
	svc, _ := setupTestService(t)

	require.NoError(t, svc.Log(&entities.AuditEvent{EventType: entities.AuditEventImport, CreatedAt: time.Now().Add(-72 * time.Hour)}))
	require.NoError(t, svc.Log(&entities.AuditEvent{EventType: entities.AuditEventImport}))

	deleted, err := svc.DeleteOldEvents(24 * time.Hour)

	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestService_NilIsNoop(t *testing.T) {
	var svc *Service

	svc.LogImport(1, "api", 1, nil)
	assert.NoError(t, svc.Log(&entities.AuditEvent{}))
	deleted, err := svc.DeleteOldEvents(time.Hour)
	assert.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
}
