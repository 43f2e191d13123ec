package entities

import (
	"time"

	"gorm.io/gorm"
)

type ImportStatus string

const (
	ImportStatusParsed       ImportStatus = "parsed"
	ImportStatusEnriched     ImportStatus = "enriched"
	ImportStatusEnrichFailed ImportStatus = "enrich_failed"
)

// ImportSession is one pasted film list together with its parsed entries.
type ImportSession struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Source      string         `gorm:"size:50;index" json:"source"` // e.g. "api", "cli"
	RawText     string         `gorm:"type:text" json:"raw_text"`
	Status      ImportStatus   `gorm:"size:20;default:'parsed'" json:"status"`
	EnrichError string         `gorm:"type:text" json:"enrich_error,omitempty"`
	EntryCount  int            `json:"entry_count"`
	Entries     []ImportEntry  `gorm:"foreignKey:SessionID" json:"entries,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// ImportEntry is the stored form of an Entry. Position keeps input line order.
type ImportEntry struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	SessionID  uint        `gorm:"index" json:"session_id"`
	Position   int         `gorm:"index" json:"position"`
	Title      string      `gorm:"size:512" json:"title"`
	Rating     *float64    `json:"rating,omitempty"`
	Review     *string     `gorm:"type:text" json:"review,omitempty"`
	Liked      *bool       `json:"liked,omitempty"`
	MatchedID  *int64      `gorm:"index" json:"matched_id,omitempty"`
	Candidates []Candidate `gorm:"serializer:json;type:text" json:"candidates,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// ToImportEntries converts pipeline entries into rows, numbering them by position.
func ToImportEntries(entries []Entry) []ImportEntry {
	rows := make([]ImportEntry, len(entries))
	for i, e := range entries {
		c := e.Clone()
		rows[i] = ImportEntry{
			Position:   i,
			Title:      c.Title,
			Rating:     c.Rating,
			Review:     c.Review,
			Liked:      c.Liked,
			MatchedID:  c.MatchedID,
			Candidates: c.Candidates,
		}
	}
	return rows
}

// AsEntry converts a stored row back into a pipeline entry.
func (r ImportEntry) AsEntry() Entry {
	return Entry{
		Title:      r.Title,
		Rating:     r.Rating,
		Review:     r.Review,
		Liked:      r.Liked,
		MatchedID:  r.MatchedID,
		Candidates: r.Candidates,
	}.Clone()
}

// EntryList returns the session's entries in stored order.
// Callers are expected to load Entries ordered by position.
func (s ImportSession) EntryList() []Entry {
	out := make([]Entry, len(s.Entries))
	for i, r := range s.Entries {
		out[i] = r.AsEntry()
	}
	return out
}
