package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Roland-02/List2Letterboxd/internal/tasks"
)

// TasksController exposes the background queue and maintenance triggers.
type TasksController struct {
	queue     TaskQueue
	retention RetentionRunner
}

// NewTasksController creates a new TasksController. Either dependency may be nil.
func NewTasksController(queue TaskQueue, retention RetentionRunner) *TasksController {
	return &TasksController{queue: queue, retention: retention}
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	if tc.queue == nil {
		respondError(c, http.StatusServiceUnavailable, CodeInternal, "task queue not enabled")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": tasks.StatusName(status),
	})
}

// RunRetention handles POST /api/retention/run
func (tc *TasksController) RunRetention(c *gin.Context) {
	if tc.retention == nil {
		respondError(c, http.StatusServiceUnavailable, CodeInternal, "retention scheduler not enabled")
		return
	}

	tc.retention.RunNow()
	respondAccepted(c, "retention purge started", nil)
}
