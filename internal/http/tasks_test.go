package http

import (
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRetention struct {
	runs atomic.Int32
}

func (r *countingRetention) RunNow() {
	r.runs.Add(1)
}

func TestTasksController_GetTaskStatus(t *testing.T) {
	queue := &fakeQueue{status: backlite.TaskStatusSuccess}
	srv := newTestServer(t, nil, withQueue(queue))

	w := srv.do(t, "GET", "/api/tasks/task-42", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string]string](t, w)
	assert.Equal(t, "task-42", resp["id"])
	assert.Equal(t, "success", resp["status"])
}

func TestTasksController_GetTaskStatus_Error(t *testing.T) {
	queue := &fakeQueue{err: errors.New("database is closed")}
	srv := newTestServer(t, nil, withQueue(queue))

	w := srv.do(t, "GET", "/api/tasks/task-42", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestTasksController_RoutesRequireQueue(t *testing.T) {
	srv := newTestServer(t, nil)

	assert.Equal(t, http.StatusNotFound, srv.do(t, "GET", "/api/tasks/task-42", nil).Code)
	assert.Equal(t, http.StatusNotFound, srv.do(t, "POST", "/api/retention/run", nil).Code)
}

func TestTasksController_RunRetention(t *testing.T) {
	retention := &countingRetention{}
	srv := newTestServer(t, nil, func(cfg *RouterConfig) { cfg.Retention = retention })

	w := srv.do(t, "POST", "/api/retention/run", nil)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, int32(1), retention.runs.Load())
}

func TestRouter_Ping(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, "GET", "/ping", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}
