package sessions

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Roland-02/List2Letterboxd/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "sessions.db")), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.ImportSession{}, &entities.ImportEntry{})
	require.NoError(t, err)

	return db
}

func floatPtr(v float64) *float64 { return &v }
func idPtr(v int64) *int64        { return &v }

func newSession(titles ...string) *entities.ImportSession {
	entries := make([]entities.Entry, len(titles))
	for i, title := range titles {
		entries[i] = entities.Entry{Title: title}
	}
	return &entities.ImportSession{
		Source:  "api",
		RawText: "raw",
		Entries: entities.ToImportEntries(entries),
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	session := newSession("Heat", "Alien", "Brazil")
	session.Entries[1].Rating = floatPtr(3.5)
	session.Entries[2].Candidates = []entities.Candidate{{Title: "Brazil", ID: 68}}

	require.NoError(t, repo.Create(session))
	assert.NotZero(t, session.ID)
	assert.Equal(t, 3, session.EntryCount)
	assert.Equal(t, entities.ImportStatusParsed, session.Status)

	loaded, err := repo.GetByID(session.ID)
	require.NoError(t, err)

	entries := loaded.EntryList()
	require.Len(t, entries, 3)
	assert.Equal(t, "Heat", entries[0].Title)
	assert.Equal(t, "Alien", entries[1].Title)
	assert.Equal(t, 3.5, *entries[1].Rating)
	assert.Equal(t, "Brazil", entries[2].Title)
	require.Len(t, entries[2].Candidates, 1)
	assert.Equal(t, int64(68), entries[2].Candidates[0].ID)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	_, err := repo.GetByID(999)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRepository_List(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(newSession("Film")))
	}

	sessions, total, err := repo.List(2, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, sessions, 2)
	assert.Greater(t, sessions[0].ID, sessions[1].ID)
	assert.Empty(t, sessions[0].Entries)
}

func TestRepository_ReplaceEntries(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	session := newSession("heat", "friends", "alien")
	require.NoError(t, repo.Create(session))

	merged := []entities.Entry{
		{Title: "Heat", MatchedID: idPtr(949)},
		{Title: "Alien", MatchedID: idPtr(348)},
	}
	require.NoError(t, repo.ReplaceEntries(session.ID, merged, entities.ImportStatusEnriched, ""))

	loaded, err := repo.GetByID(session.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.ImportStatusEnriched, loaded.Status)
	assert.Equal(t, 2, loaded.EntryCount)
	assert.Equal(t, merged, loaded.EntryList())

	err = repo.ReplaceEntries(999, merged, entities.ImportStatusEnriched, "")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	session := newSession("Heat")
	require.NoError(t, repo.Create(session))

	require.NoError(t, repo.UpdateStatus(session.ID, entities.ImportStatusEnrichFailed, "service down"))

	loaded, err := repo.GetByID(session.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.ImportStatusEnrichFailed, loaded.Status)
	assert.Equal(t, "service down", loaded.EnrichError)
	assert.Len(t, loaded.Entries, 1)

	assert.ErrorIs(t, repo.UpdateStatus(999, entities.ImportStatusEnriched, ""), ErrSessionNotFound)
}

func TestRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	session := newSession("Heat", "Alien")
	require.NoError(t, repo.Create(session))

	require.NoError(t, repo.Delete(session.ID))

	_, err := repo.GetByID(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	var remaining int64
	require.NoError(t, db.Model(&entities.ImportEntry{}).Count(&remaining).Error)
	assert.Zero(t, remaining)

	assert.ErrorIs(t, repo.Delete(session.ID), ErrSessionNotFound)
}

func TestRepository_DeleteOlderThan(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	old := newSession("Old One", "Old Two")
	old.CreatedAt = time.Now().Add(-48 * time.Hour)
	require.NoError(t, repo.Create(old))

	recent := newSession("Recent")
	require.NoError(t, repo.Create(recent))

	deleted, err := repo.DeleteOlderThan(time.Now().Add(-24 * time.Hour))

	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.GetByID(old.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = repo.GetByID(recent.ID)
	assert.NoError(t, err)

	var remaining int64
	require.NoError(t, db.Model(&entities.ImportEntry{}).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)
}
