package services

import "github.com/Roland-02/List2Letterboxd/internal/entities"

// SessionStore persists import sessions and their ordered entries.
type SessionStore interface {
	Create(session *entities.ImportSession) error
	GetByID(id uint) (*entities.ImportSession, error)
	List(limit, offset int) ([]entities.ImportSession, int64, error)
	ReplaceEntries(id uint, entries []entities.Entry, status entities.ImportStatus, errMsg string) error
	UpdateStatus(id uint, status entities.ImportStatus, errMsg string) error
	Delete(id uint) error
}

// SnapshotSaver keeps a copy of raw imports.
type SnapshotSaver interface {
	SaveImport(source, rawText string, entries []entities.Entry) (string, error)
}

// ActivityLogger records what happened to import sessions.
type ActivityLogger interface {
	LogImport(sessionID uint, source string, entryCount int, err error)
	LogEnrich(sessionID uint, resolved, unresolved, dropped int, err error)
	LogExport(sessionID uint, rowsWritten int, err error)
	LogDelete(sessionID uint)
}
