package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/Roland-02/List2Letterboxd/internal/audit"
	"github.com/Roland-02/List2Letterboxd/internal/database/sessions"
	"github.com/Roland-02/List2Letterboxd/internal/exporters"
	"github.com/Roland-02/List2Letterboxd/internal/http"
	"github.com/Roland-02/List2Letterboxd/internal/matching"
	"github.com/Roland-02/List2Letterboxd/internal/scheduler"
	"github.com/Roland-02/List2Letterboxd/internal/services"
	"github.com/Roland-02/List2Letterboxd/internal/tasks"
	"github.com/Roland-02/List2Letterboxd/internal/tmdb"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// SessionStore implementations
var _ services.SessionStore = (*sessions.Repository)(nil)

// SessionPurger implementations
var _ scheduler.SessionPurger = (*sessions.Repository)(nil)

// EventPurger and RetentionRecorder implementations
var _ scheduler.EventPurger = (*audit.Service)(nil)
var _ scheduler.RetentionRecorder = (*audit.Service)(nil)

// AuditLog implementations
var _ http.AuditLog = (*audit.Service)(nil)

// =============================================================================
// Import Pipeline
// =============================================================================

var _ http.Pipeline = (*services.ImportService)(nil)
var _ http.SessionManager = (*services.ImportService)(nil)

var _ services.ActivityLogger = (*audit.Service)(nil)
var _ services.SnapshotSaver = (*audit.Auditor)(nil)

var _ exporters.EntryExporter = (*exporters.LetterboxdCSV)(nil)

// =============================================================================
// Matching
// =============================================================================

// Service implementations
var _ matching.Service = (*matching.Client)(nil)
var _ matching.Service = (*tmdb.Matcher)(nil)

var _ http.BatchMatcher = (*tmdb.Matcher)(nil)
var _ tmdb.Searcher = (*tmdb.Client)(nil)
var _ tmdb.Store = (*tmdb.RedisStore)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ http.TaskQueue = (*tasks.Client)(nil)
var _ http.RetentionRunner = (*scheduler.RetentionScheduler)(nil)
var _ scheduler.TaskEnqueuer = (*tasks.Client)(nil)

var _ tasks.SessionEnricher = (*services.ImportService)(nil)
var _ tasks.ExpiredDataPurger = (*scheduler.RetentionScheduler)(nil)
