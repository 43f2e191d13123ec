package http

import (
	"context"
	"io"

	"github.com/mikestefanello/backlite"

	"github.com/Roland-02/List2Letterboxd/internal/entities"
	"github.com/Roland-02/List2Letterboxd/internal/exporters"
	"github.com/Roland-02/List2Letterboxd/internal/matching"
	"github.com/Roland-02/List2Letterboxd/internal/parsers"
	"github.com/Roland-02/List2Letterboxd/internal/services"
)

// Each controller depends on the narrow interface it needs; this file
// collects them. *services.ImportService satisfies Pipeline and SessionManager.

// Pipeline runs the stateless parse, match and export steps.
type Pipeline interface {
	ParserOptions() parsers.Options
	ParseWith(text string, opts parsers.Options) []entities.Entry
	Match(ctx context.Context, entries []entities.Entry, language string) (services.MatchOutcome, error)
	Export(w io.Writer, entries []entities.Entry) (exporters.ExportResult, error)
}

// SessionManager stores import sessions and runs the pipeline on them.
type SessionManager interface {
	ParserOptions() parsers.Options
	CreateSession(source, text string, opts parsers.Options) (*entities.ImportSession, error)
	GetSession(id uint) (*entities.ImportSession, error)
	ListSessions(limit, offset int) ([]entities.ImportSession, int64, error)
	DeleteSession(id uint) error
	EnrichSession(ctx context.Context, id uint) (*entities.ImportSession, services.MatchOutcome, error)
	ExportSession(id uint, w io.Writer) (exporters.ExportResult, error)
}

// BatchMatcher resolves a batch of titles against the film database.
type BatchMatcher interface {
	MatchBatch(ctx context.Context, request matching.Request) matching.Response
}

// TaskQueue enqueues background tasks and reports on them.
type TaskQueue interface {
	Enqueue(task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// AuditLog reads recorded session activity.
type AuditLog interface {
	GetEvents(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error)
	GetSessionHistory(sessionID uint) ([]entities.AuditEvent, error)
}

// RetentionRunner triggers an out-of-schedule retention purge.
type RetentionRunner interface {
	RunNow()
}

var (
	_ Pipeline       = (*services.ImportService)(nil)
	_ SessionManager = (*services.ImportService)(nil)
)
