package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/Roland-02/List2Letterboxd/internal/entities"
	"github.com/Roland-02/List2Letterboxd/internal/services"
)

// SessionEnricher runs the matching step for a stored import session.
type SessionEnricher interface {
	EnrichSession(ctx context.Context, id uint) (*entities.ImportSession, services.MatchOutcome, error)
}

// EnrichSessionTask matches the entries of one import session in the background.
type EnrichSessionTask struct {
	SessionID uint `json:"session_id"`
}

// Config returns the queue configuration for session enrichment tasks.
// A failed match is recorded on the session itself, so the task is not retried.
func (t EnrichSessionTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "enrich_import_session",
		MaxAttempts: 1,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// EnrichSessionProcessor creates a processor function for EnrichSessionTask.
func EnrichSessionProcessor(enricher SessionEnricher, timeout time.Duration) backlite.QueueProcessor[EnrichSessionTask] {
	return func(ctx context.Context, task EnrichSessionTask) error {
		if enricher == nil {
			return fmt.Errorf("session enricher not configured")
		}

		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		session, outcome, err := enricher.EnrichSession(ctx, task.SessionID)
		if err != nil {
			return fmt.Errorf("enrich session %d: %w", task.SessionID, err)
		}

		if outcome.Warning != "" {
			log.Printf("[TASK] Session %d left unmatched: %s", session.ID, outcome.Warning)
			return nil
		}

		log.Printf("[TASK] Enriched session %d: %d resolved, %d unresolved, %d dropped",
			session.ID, outcome.Summary.Resolved, outcome.Summary.Unresolved, outcome.Summary.Dropped)
		return nil
	}
}

// NewEnrichSessionQueue creates a backlite queue for session enrichment tasks.
func NewEnrichSessionQueue(enricher SessionEnricher, timeout time.Duration) backlite.Queue {
	return backlite.NewQueue(EnrichSessionProcessor(enricher, timeout))
}
