package http

import (
	"github.com/Roland-02/List2Letterboxd/internal/database"
)

// RouterConfig contains all dependencies needed to build the HTTP router.
// Optional dependencies are left nil to disable their routes or features.
type RouterConfig struct {
	// Core dependencies
	Pipeline Pipeline
	Sessions SessionManager
	Database *database.Database

	// Match service endpoint, backed by TMDB (optional)
	Matcher BatchMatcher

	// Task queue (optional); session enrichment runs inline without it
	TaskQueue TaskQueue

	// Activity log (optional)
	AuditLog AuditLog

	// Retention purge trigger (optional)
	Retention RetentionRunner

	// Application info
	Version string
}
