package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/Roland-02/List2Letterboxd/internal/entities"
	"github.com/Roland-02/List2Letterboxd/internal/exporters"
	"github.com/Roland-02/List2Letterboxd/internal/matching"
	"github.com/Roland-02/List2Letterboxd/internal/parsers"
)

// ErrMatchingUnavailable is reported when no match service is configured.
var ErrMatchingUnavailable = errors.New("no match service configured")

// MatchOutcome is the result of enriching a list of entries. Warning is set
// when the lookup failed and Entries are the unenriched input.
type MatchOutcome struct {
	Entries []entities.Entry `json:"entries"`
	Summary matching.Summary `json:"summary"`
	Warning string           `json:"warning,omitempty"`
}

// ImportService runs the parse, match and export pipeline, either on
// transient lists or on stored import sessions.
type ImportService struct {
	parserOptions parsers.Options
	merger        *matching.Merger
	store         SessionStore
	exporter      exporters.EntryExporter
	snapshots     SnapshotSaver
	activity      ActivityLogger
}

// NewImportService creates a new ImportService. merger and store may be nil,
// in which case matching and session operations are unavailable.
func NewImportService(parserOptions parsers.Options, merger *matching.Merger, store SessionStore, exporter exporters.EntryExporter) *ImportService {
	return &ImportService{
		parserOptions: parserOptions,
		merger:        merger,
		store:         store,
		exporter:      exporter,
	}
}

// SetSnapshotSaver enables raw input snapshots (optional).
func (s *ImportService) SetSnapshotSaver(saver SnapshotSaver) {
	s.snapshots = saver
}

// SetActivityLogger enables the session activity log (optional).
func (s *ImportService) SetActivityLogger(logger ActivityLogger) {
	s.activity = logger
}

// ParserOptions returns the default grammar options.
func (s *ImportService) ParserOptions() parsers.Options {
	return s.parserOptions
}

// Parse converts text into entries using the default grammar.
func (s *ImportService) Parse(text string) []entities.Entry {
	return s.ParseWith(text, s.parserOptions)
}

// ParseWith converts text into entries using opts.
func (s *ImportService) ParseWith(text string, opts parsers.Options) []entities.Entry {
	return parsers.NewFilmListParser(opts).Parse(text)
}

// Match enriches entries in one batched lookup. language overrides the
// configured language when non-empty.
//
// A failed lookup is not fatal: the outcome carries the unenriched entries and
// a warning, and the error is returned alongside it.
func (s *ImportService) Match(ctx context.Context, entries []entities.Entry, language string) (MatchOutcome, error) {
	if s.merger == nil {
		return MatchOutcome{
			Entries: entities.CloneEntries(entries),
			Summary: matching.Summarize(entries, entries),
			Warning: ErrMatchingUnavailable.Error(),
		}, ErrMatchingUnavailable
	}

	merged, err := s.merger.WithLanguage(language).Enrich(ctx, entries)
	outcome := MatchOutcome{
		Entries: merged,
		Summary: matching.Summarize(entries, merged),
	}
	if err != nil {
		outcome.Warning = fmt.Sprintf("matching failed, entries left unresolved: %v", err)
	}
	return outcome, err
}

// Export writes the resolved entries with the configured exporter.
func (s *ImportService) Export(w io.Writer, entries []entities.Entry) (exporters.ExportResult, error) {
	return s.exporter.Encode(w, entries)
}

// CreateSession parses text and stores the result as a new import session.
func (s *ImportService) CreateSession(source, text string, opts parsers.Options) (*entities.ImportSession, error) {
	if s.store == nil {
		return nil, errors.New("session storage not configured")
	}

	entries := s.ParseWith(text, opts)
	session := &entities.ImportSession{
		Source:  source,
		RawText: text,
		Status:  entities.ImportStatusParsed,
		Entries: entities.ToImportEntries(entries),
	}

	if err := s.store.Create(session); err != nil {
		s.logImport(0, source, len(entries), err)
		return nil, fmt.Errorf("failed to store import session: %w", err)
	}
	s.logImport(session.ID, source, len(entries), nil)

	if s.snapshots != nil {
		if _, err := s.snapshots.SaveImport(source, text, entries); err != nil {
			log.Printf("Failed to save import snapshot for session %d: %v", session.ID, err)
		}
	}

	return session, nil
}

// GetSession loads a session with its entries.
func (s *ImportService) GetSession(id uint) (*entities.ImportSession, error) {
	if s.store == nil {
		return nil, errors.New("session storage not configured")
	}
	return s.store.GetByID(id)
}

// ListSessions returns stored sessions, most recent first.
func (s *ImportService) ListSessions(limit, offset int) ([]entities.ImportSession, int64, error) {
	if s.store == nil {
		return nil, 0, errors.New("session storage not configured")
	}
	return s.store.List(limit, offset)
}

// DeleteSession removes a session and its entries.
func (s *ImportService) DeleteSession(id uint) error {
	if s.store == nil {
		return errors.New("session storage not configured")
	}
	if err := s.store.Delete(id); err != nil {
		return err
	}
	if s.activity != nil {
		s.activity.LogDelete(id)
	}
	return nil
}

// EnrichSession matches a stored session and persists the merged entries.
//
// A failed lookup leaves the stored entries untouched, marks the session as
// enrich_failed and is reported through the outcome's Warning. The returned
// error is reserved for storage failures.
func (s *ImportService) EnrichSession(ctx context.Context, id uint) (*entities.ImportSession, MatchOutcome, error) {
	session, err := s.GetSession(id)
	if err != nil {
		return nil, MatchOutcome{}, err
	}

	entries := session.EntryList()
	outcome, matchErr := s.Match(ctx, entries, "")
	summary := outcome.Summary

	if matchErr != nil {
		if err := s.store.UpdateStatus(id, entities.ImportStatusEnrichFailed, matchErr.Error()); err != nil {
			return nil, outcome, fmt.Errorf("failed to record enrichment failure: %w", err)
		}
	} else if err := s.store.ReplaceEntries(id, outcome.Entries, entities.ImportStatusEnriched, ""); err != nil {
		return nil, outcome, fmt.Errorf("failed to store enriched entries: %w", err)
	}

	if s.activity != nil {
		s.activity.LogEnrich(id, summary.Resolved, summary.Unresolved, summary.Dropped, matchErr)
	}

	updated, err := s.store.GetByID(id)
	if err != nil {
		return nil, outcome, err
	}
	return updated, outcome, nil
}

// ExportSession writes the resolved entries of a stored session.
func (s *ImportService) ExportSession(id uint, w io.Writer) (exporters.ExportResult, error) {
	session, err := s.GetSession(id)
	if err != nil {
		return exporters.ExportResult{}, err
	}

	result, err := s.Export(w, session.EntryList())
	if s.activity != nil {
		s.activity.LogExport(id, result.RowsWritten, err)
	}
	return result, err
}

func (s *ImportService) logImport(id uint, source string, count int, err error) {
	if s.activity != nil {
		s.activity.LogImport(id, source, count, err)
	}
}
