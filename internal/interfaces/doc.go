// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - SessionStore: Import session persistence (internal/services/interfaces.go)
//   - SessionPurger, EventPurger: Retention deletes (internal/scheduler/retention.go)
//   - AuditLog: Read access to session activity (internal/http/stores.go)
//
// ## Pipeline Interfaces
//
//   - Pipeline, SessionManager: What the HTTP layer needs from ImportService (internal/http/stores.go)
//   - ActivityLogger, SnapshotSaver: Optional ImportService hooks (internal/services/interfaces.go)
//   - EntryExporter: Output formats (internal/exporters/generic.go)
//
// ## Matching Interfaces
//
//   - matching.Service: Anything that answers a batched match request.
//     matching.Client calls a remote service, tmdb.Matcher answers in process.
//   - tmdb.Searcher: TMDB search endpoint (internal/tmdb/client.go)
//   - tmdb.Store: Lookup cache backend (internal/tmdb/cache.go)
//
// ## Background Work Interfaces
//
//   - TaskQueue, TaskEnqueuer: Enqueueing backlite tasks (internal/http/stores.go, internal/scheduler/retention.go)
//   - SessionEnricher, ExpiredDataPurger: What task processors call (internal/tasks/)
//
// # Adding a New Match Backend
//
//  1. Implement matching.Service:
//
//     type OMDBMatcher struct {
//         apiKey string
//     }
//
//     func (m *OMDBMatcher) Match(ctx context.Context, request matching.Request) (*matching.Response, error)
//
//     The response must hold exactly one Match per query, in query order.
//
//  2. Select it in services.NewMatchBackend.
//
// # Adding a New Export Format
//
//  1. Implement exporters.EntryExporter in internal/exporters/
//
//  2. Pass it to services.NewImportService in entrypoint.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for examples.
package interfaces
