package scheduler

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/Roland-02/List2Letterboxd/internal/tasks"
)

// SessionPurger deletes import sessions created before a cutoff.
type SessionPurger interface {
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

// EventPurger deletes audit events older than a retention window.
type EventPurger interface {
	DeleteOldEvents(retention time.Duration) (int64, error)
}

// RetentionRecorder records the outcome of a purge run.
type RetentionRecorder interface {
	LogRetention(deleted int64, err error)
}

// TaskEnqueuer hands work to the background queue.
type TaskEnqueuer interface {
	Enqueue(task backlite.Task) (string, error)
}

// RetentionConfig controls when and how far back sessions are purged.
type RetentionConfig struct {
	Enabled  bool
	Schedule string
	MaxAge   time.Duration
}

// RetentionScheduler periodically removes import sessions and audit events
// older than MaxAge. With a task queue attached, runs are enqueued as
// PurgeExpiredTask and executed by a worker; otherwise they run inline.
type RetentionScheduler struct {
	config   RetentionConfig
	sessions SessionPurger
	events   EventPurger
	recorder RetentionRecorder
	queue    TaskEnqueuer

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
	isPurging bool
	now       func() time.Time
}

// NewRetentionScheduler creates a new scheduler instance. events and recorder may be nil.
func NewRetentionScheduler(cfg RetentionConfig, sessions SessionPurger, events EventPurger, recorder RetentionRecorder) *RetentionScheduler {
	return &RetentionScheduler{
		config:   cfg,
		sessions: sessions,
		events:   events,
		recorder: recorder,
		cron:     cron.New(cron.WithParser(scheduleParser)),
		now:      time.Now,
	}
}

// SetTaskEnqueuer routes scheduled runs through the background queue.
func (s *RetentionScheduler) SetTaskEnqueuer(queue TaskEnqueuer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = queue
}

// Start begins the scheduler if retention is enabled.
func (s *RetentionScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		log.Printf("[RETENTION] Scheduler disabled")
		return nil
	}

	if s.config.MaxAge <= 0 {
		return fmt.Errorf("invalid retention max age %v", s.config.MaxAge)
	}

	if err := ValidateCronSchedule(s.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.config.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, s.runPurge)
	if err != nil {
		return fmt.Errorf("failed to schedule retention job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := NextRunAfter(s.config.Schedule, s.now())
	log.Printf("[RETENTION] Scheduler started with schedule '%s' (%s), max age %v. Next run: %v",
		s.config.Schedule, DescribeSchedule(s.config.Schedule), s.config.MaxAge, nextRun)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running purge to finish and stops the scheduler.
func (s *RetentionScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.cron.Remove(s.entryID)
	s.mu.Unlock()

	<-s.cron.Stop().Done()

	log.Printf("[RETENTION] Scheduler stopped")
}

// RunNow triggers an immediate purge in the background.
func (s *RetentionScheduler) RunNow() {
	go s.runPurge()
}

// IsRunning returns whether the scheduler is active.
func (s *RetentionScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next purge will occur.
func (s *RetentionScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// PurgeExpired deletes sessions older than maxAge and audit events past the
// same window, then records the outcome. The count covers sessions only.
func (s *RetentionScheduler) PurgeExpired(maxAge time.Duration) (int64, error) {
	if s.sessions == nil {
		return 0, fmt.Errorf("session purger not configured")
	}

	deleted, err := s.sessions.DeleteOlderThan(s.now().Add(-maxAge))
	if err != nil {
		err = fmt.Errorf("failed to purge sessions: %w", err)
		s.record(0, err)
		return 0, err
	}

	if s.events != nil {
		if events, err := s.events.DeleteOldEvents(maxAge); err != nil {
			log.Printf("[RETENTION] Warning: failed to purge audit events: %v", err)
		} else if events > 0 {
			log.Printf("[RETENTION] Removed %d audit events", events)
		}
	}

	s.record(deleted, nil)
	return deleted, nil
}

func (s *RetentionScheduler) runPurge() {
	s.mu.Lock()
	if s.isPurging {
		s.mu.Unlock()
		log.Printf("[RETENTION] Skipped (purge already in progress)")
		return
	}
	s.isPurging = true
	queue := s.queue
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isPurging = false
		s.mu.Unlock()
	}()

	if queue != nil {
		task := tasks.PurgeExpiredTask{MaxAgeHours: int(math.Ceil(s.config.MaxAge.Hours()))}
		id, err := queue.Enqueue(task)
		if err == nil {
			log.Printf("[RETENTION] Enqueued purge task %s", id)
			return
		}
		log.Printf("[RETENTION] Failed to enqueue purge task, running inline: %v", err)
	}

	deleted, err := s.PurgeExpired(s.config.MaxAge)
	if err != nil {
		log.Printf("[RETENTION] %v", err)
		return
	}
	log.Printf("[RETENTION] Purged %d import sessions older than %v", deleted, s.config.MaxAge)
}

func (s *RetentionScheduler) record(deleted int64, err error) {
	if s.recorder == nil {
		return
	}
	s.recorder.LogRetention(deleted, err)
}
