package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/require"

	"github.com/Roland-02/List2Letterboxd/internal/database/sessions"
	"github.com/Roland-02/List2Letterboxd/internal/exporters"
	"github.com/Roland-02/List2Letterboxd/internal/matching"
	"github.com/Roland-02/List2Letterboxd/internal/parsers"
	"github.com/Roland-02/List2Letterboxd/internal/services"
)

// catalogService resolves titles found in its catalog and flags titles in tv
// as non-film. With err set, every call fails.
type catalogService struct {
	catalog map[string]int64
	tv      map[string]bool
	err     error
}

func (s *catalogService) Match(ctx context.Context, request matching.Request) (*matching.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	resp := &matching.Response{Matches: make([]matching.Match, len(request.Queries))}
	for i, q := range request.Queries {
		m := matching.Match{InputTitle: q.Title}
		if id, ok := s.catalog[q.Title]; ok {
			title := q.Title
			m.Title = &title
			m.TMDBID = &id
		}
		if s.tv[q.Title] {
			yes := true
			m.IsTVShow = &yes
		}
		resp.Matches[i] = m
	}
	return resp, nil
}

func defaultCatalog() *catalogService {
	return &catalogService{
		catalog: map[string]int64{"Heat": 949, "Alien": 348},
		tv:      map[string]bool{"Friends": true},
	}
}

type fakeQueue struct {
	mu     sync.Mutex
	tasks  []backlite.Task
	err    error
	status backlite.TaskStatus
}

func (q *fakeQueue) Enqueue(task backlite.Task) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return "", q.err
	}
	q.tasks = append(q.tasks, task)
	return "task-42", nil
}

func (q *fakeQueue) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	if q.err != nil {
		return backlite.TaskStatusNotFound, q.err
	}
	return q.status, nil
}

type testServer struct {
	router  *gin.Engine
	service *services.ImportService
}

type serverOption func(*RouterConfig)

func withQueue(q TaskQueue) serverOption {
	return func(cfg *RouterConfig) { cfg.TaskQueue = q }
}

func withMatcher(m BatchMatcher) serverOption {
	return func(cfg *RouterConfig) { cfg.Matcher = m }
}

func newTestServer(t *testing.T, matchService matching.Service, opts ...serverOption) *testServer {
	t.Helper()

	db := setupTestDB(t)
	var merger *matching.Merger
	if matchService != nil {
		merger = matching.NewMerger(matchService, "en-US", 10)
	}
	service := services.NewImportService(parsers.Options{}, merger, sessions.NewRepository(db.DB), exporters.NewLetterboxdCSV(""))

	cfg := RouterConfig{
		Pipeline: service,
		Sessions: service,
		Database: db,
		Version:  "test",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &testServer{router: NewRouter(cfg), service: service}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

var errUnreachable = errors.New("dial tcp: connection refused")
