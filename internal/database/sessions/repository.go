package sessions

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Roland-02/List2Letterboxd/internal/entities"
)

var ErrSessionNotFound = errors.New("import session not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a session together with its entries.
func (r *Repository) Create(session *entities.ImportSession) error {
	session.EntryCount = len(session.Entries)
	if session.Status == "" {
		session.Status = entities.ImportStatusParsed
	}
	return r.db.Create(session).Error
}

// GetByID loads a session with its entries in input order.
func (r *Repository) GetByID(id uint) (*entities.ImportSession, error) {
	var session entities.ImportSession
	err := r.db.
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&session, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// List returns sessions without their entries, most recent first.
func (r *Repository) List(limit, offset int) ([]entities.ImportSession, int64, error) {
	var sessions []entities.ImportSession
	var total int64

	query := r.db.Model(&entities.ImportSession{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	err := query.Order("created_at DESC").Order("id DESC").Limit(limit).Offset(offset).Find(&sessions).Error
	return sessions, total, err
}

// ReplaceEntries swaps the stored entries of a session for entries and
// records the new status in one transaction.
func (r *Repository) ReplaceEntries(id uint, entries []entities.Entry, status entities.ImportStatus, errMsg string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.ImportSession{}).Where("id = ?", id).Updates(map[string]any{
			"status":       status,
			"enrich_error": errMsg,
			"entry_count":  len(entries),
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSessionNotFound
		}

		if err := tx.Where("session_id = ?", id).Delete(&entities.ImportEntry{}).Error; err != nil {
			return err
		}

		rows := entities.ToImportEntries(entries)
		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].SessionID = id
		}
		return tx.Create(&rows).Error
	})
}

// UpdateStatus records a status change without touching the entries.
func (r *Repository) UpdateStatus(id uint, status entities.ImportStatus, errMsg string) error {
	result := r.db.Model(&entities.ImportSession{}).Where("id = ?", id).Updates(map[string]any{
		"status":       status,
		"enrich_error": errMsg,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Delete removes a session and its entries permanently.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Unscoped().Delete(&entities.ImportSession{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSessionNotFound
		}
		return tx.Where("session_id = ?", id).Delete(&entities.ImportEntry{}).Error
	})
}

// DeleteOlderThan permanently removes sessions created before cutoff along
// with their entries. Returns the number of deleted sessions.
func (r *Repository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Unscoped().Model(&entities.ImportSession{}).
			Where("created_at < ?", cutoff).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("session_id IN ?", ids).Delete(&entities.ImportEntry{}).Error; err != nil {
			return err
		}
		result := tx.Unscoped().Where("id IN ?", ids).Delete(&entities.ImportSession{})
		deleted = result.RowsAffected
		return result.Error
	})
	return deleted, err
}
