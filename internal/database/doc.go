// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── sessions/        # Import sessions and their ordered entries
//	└── audit/           # Audit event log
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./list2letterboxd.db")
//
//	sessionsRepo := sessions.NewRepository(db.DB)
//	auditRepo := audit.NewRepository(db.DB)
//
//	session, err := sessionsRepo.GetByID(42)
//
// # Interface Implementations
//
//   - sessions.Repository: implements services.SessionStore and scheduler.SessionPurger
//   - audit.Repository: backs audit.Service
package database
