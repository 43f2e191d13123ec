package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// DefaultMaxAgeHours is used when a purge task carries no age.
const DefaultMaxAgeHours = 24 * 30

// ExpiredDataPurger removes import sessions and audit events past a given age.
type ExpiredDataPurger interface {
	PurgeExpired(maxAge time.Duration) (int64, error)
}

// PurgeExpiredTask removes import sessions older than MaxAgeHours.
type PurgeExpiredTask struct {
	MaxAgeHours int `json:"max_age_hours"`
}

// Config returns the queue configuration for retention purge tasks.
func (t PurgeExpiredTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "purge_expired_sessions",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// MaxAge returns the task's age threshold, falling back to DefaultMaxAgeHours.
func (t PurgeExpiredTask) MaxAge() time.Duration {
	hours := t.MaxAgeHours
	if hours <= 0 {
		hours = DefaultMaxAgeHours
	}
	return time.Duration(hours) * time.Hour
}

// PurgeExpiredProcessor creates a processor function for PurgeExpiredTask.
func PurgeExpiredProcessor(purger ExpiredDataPurger) backlite.QueueProcessor[PurgeExpiredTask] {
	return func(ctx context.Context, task PurgeExpiredTask) error {
		if purger == nil {
			return fmt.Errorf("retention purger not configured")
		}

		deleted, err := purger.PurgeExpired(task.MaxAge())
		if err != nil {
			return fmt.Errorf("purge expired sessions: %w", err)
		}

		log.Printf("[TASK] Purged %d import sessions older than %v", deleted, task.MaxAge())
		return nil
	}
}

// NewPurgeExpiredQueue creates a backlite queue for retention purge tasks.
func NewPurgeExpiredQueue(purger ExpiredDataPurger) backlite.Queue {
	return backlite.NewQueue(PurgeExpiredProcessor(purger))
}
