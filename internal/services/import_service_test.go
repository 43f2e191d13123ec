package services

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Roland-02/List2Letterboxd/internal/database/sessions"
	"github.com/Roland-02/List2Letterboxd/internal/entities"
	"github.com/Roland-02/List2Letterboxd/internal/exporters"
	"github.com/Roland-02/List2Letterboxd/internal/matching"
	"github.com/Roland-02/List2Letterboxd/internal/parsers"
)

type stubMatchService struct {
	response *matching.Response
	err      error
	requests []matching.Request
}

func (s *stubMatchService) Match(ctx context.Context, request matching.Request) (*matching.Response, error) {
	s.requests = append(s.requests, request)
	return s.response, s.err
}

type recordingActivity struct {
	mu      sync.Mutex
	actions []string
	errs    []error
}

func (r *recordingActivity) record(action string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, action)
	r.errs = append(r.errs, err)
}

func (r *recordingActivity) LogImport(id uint, source string, count int, err error) {
	r.record("import", err)
}

func (r *recordingActivity) LogEnrich(id uint, resolved, unresolved, dropped int, err error) {
	r.record("enrich", err)
}

func (r *recordingActivity) LogExport(id uint, rows int, err error) {
	r.record("export", err)
}

func (r *recordingActivity) LogDelete(id uint) {
	r.record("delete", nil)
}

type recordingSnapshots struct {
	sources []string
}

func (r *recordingSnapshots) SaveImport(source, rawText string, entries []entities.Entry) (string, error) {
	r.sources = append(r.sources, source)
	return "snapshot.json", nil
}

func strPtr(s string) *string { return &s }
func idPtr(v int64) *int64    { return &v }
func boolPtr(v bool) *bool    { return &v }

const sampleList = `- The Dark Knight - 5/10
- [x] Interstellar (5/10) - Epic space adventure
Friends ★★★
Pulp Fiction`

func sampleResponse() *matching.Response {
	return &matching.Response{Matches: []matching.Match{
		{InputTitle: "The Dark Knight", Title: strPtr("The Dark Knight"), TMDBID: idPtr(155)},
		{InputTitle: "Interstellar", Title: strPtr("Interstellar"), TMDBID: idPtr(157336)},
		{InputTitle: "Friends", Title: strPtr("Friends"), TMDBID: idPtr(1668), IsTVShow: boolPtr(true)},
		{InputTitle: "Pulp Fiction"},
	}}
}

func setupService(t *testing.T, service matching.Service) (*ImportService, *recordingActivity) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "service.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.ImportSession{}, &entities.ImportEntry{}))

	var merger *matching.Merger
	if service != nil {
		merger = matching.NewMerger(service, "en-US", 5)
	}
	svc := NewImportService(parsers.Options{}, merger, sessions.NewRepository(db), exporters.NewLetterboxdCSV(""))
	activity := &recordingActivity{}
	svc.SetActivityLogger(activity)
	return svc, activity
}

func TestImportService_Parse(t *testing.T) {
	svc, _ := setupService(t, nil)

	entries := svc.Parse(sampleList)

	require.Len(t, entries, 4)
	assert.Equal(t, "The Dark Knight", entries[0].Title)
	assert.Equal(t, "Interstellar", entries[1].Title)
	assert.Equal(t, "Epic space adventure", *entries[1].Review)
	assert.Equal(t, 3.0, *entries[2].Rating)
	assert.Nil(t, entries[3].Rating)
}

func TestImportService_Match(t *testing.T) {
	service := &stubMatchService{response: sampleResponse()}
	svc, _ := setupService(t, service)

	outcome, err := svc.Match(context.Background(), svc.Parse(sampleList), "fr-FR")

	require.NoError(t, err)
	assert.Empty(t, outcome.Warning)
	require.Len(t, outcome.Entries, 3)
	assert.Equal(t, matching.Summary{Total: 4, Resolved: 2, Unresolved: 1, Dropped: 1}, outcome.Summary)
	require.Len(t, service.requests, 1)
	assert.Equal(t, "fr-FR", service.requests[0].Language)
}

func TestImportService_Match_SoftFail(t *testing.T) {
	service := &stubMatchService{err: &matching.ServiceError{StatusCode: 503}}
	svc, _ := setupService(t, service)
	entries := svc.Parse(sampleList)

	outcome, err := svc.Match(context.Background(), entries, "")

	assert.Error(t, err)
	assert.Contains(t, outcome.Warning, "HTTP 503")
	assert.Equal(t, entries, outcome.Entries)
}

func TestImportService_Match_NoMerger(t *testing.T) {
	svc, _ := setupService(t, nil)
	entries := svc.Parse("Heat")

	outcome, err := svc.Match(context.Background(), entries, "")

	assert.ErrorIs(t, err, ErrMatchingUnavailable)
	assert.Equal(t, entries, outcome.Entries)
	assert.NotEmpty(t, outcome.Warning)
}

func TestImportService_SessionLifecycle(t *testing.T) {
	service := &stubMatchService{response: sampleResponse()}
	svc, activity := setupService(t, service)
	snapshots := &recordingSnapshots{}
	svc.SetSnapshotSaver(snapshots)

	session, err := svc.CreateSession("api", sampleList, svc.ParserOptions())
	require.NoError(t, err)
	assert.Equal(t, 4, session.EntryCount)
	assert.Equal(t, []string{"api"}, snapshots.sources)

	enriched, outcome, err := svc.EnrichSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Empty(t, outcome.Warning)
	assert.Equal(t, entities.ImportStatusEnriched, enriched.Status)
	assert.Equal(t, 3, enriched.EntryCount)

	var buf bytes.Buffer
	result, err := svc.ExportSession(session.ID, &buf)
	require.NoError(t, err)
	assert.Equal(t, exporters.ExportResult{RowsWritten: 2, EntriesSkipped: 1}, result)
	assert.Equal(t,
		"tmdbID,Title,Rating,Review\n"+
			"155,The Dark Knight,2.5,\n"+
			"157336,Interstellar,2.5,Epic space adventure\n",
		buf.String())

	require.NoError(t, svc.DeleteSession(session.ID))
	_, err = svc.GetSession(session.ID)
	assert.ErrorIs(t, err, sessions.ErrSessionNotFound)

	assert.Equal(t, []string{"import", "enrich", "export", "delete"}, activity.actions)
}

func TestImportService_EnrichSession_SoftFail(t *testing.T) {
	service := &stubMatchService{err: errors.New("connection refused")}
	svc, activity := setupService(t, service)

	session, err := svc.CreateSession("cli", sampleList, parsers.Options{})
	require.NoError(t, err)

	updated, outcome, err := svc.EnrichSession(context.Background(), session.ID)

	require.NoError(t, err)
	assert.Contains(t, outcome.Warning, "connection refused")
	assert.Equal(t, entities.ImportStatusEnrichFailed, updated.Status)
	assert.Equal(t, "connection refused", updated.EnrichError)
	assert.Len(t, updated.Entries, 4)
	assert.Error(t, activity.errs[len(activity.errs)-1])
}

func TestImportService_EnrichSession_NotFound(t *testing.T) {
	svc, _ := setupService(t, &stubMatchService{})

	_, _, err := svc.EnrichSession(context.Background(), 404)
	assert.ErrorIs(t, err, sessions.ErrSessionNotFound)
}

func TestImportService_ListSessions(t *testing.T) {
	svc, _ := setupService(t, nil)
	for i := 0; i < 3; i++ {
		_, err := svc.CreateSession("api", "Heat", parsers.Options{})
		require.NoError(t, err)
	}

	list, total, err := svc.ListSessions(10, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 3)
}
