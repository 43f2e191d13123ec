package http

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Roland-02/List2Letterboxd/internal/database/sessions"
	"github.com/Roland-02/List2Letterboxd/internal/entities"
	"github.com/Roland-02/List2Letterboxd/internal/matching"
	"github.com/Roland-02/List2Letterboxd/internal/tasks"
)

const defaultSessionSource = "api"

// SessionsController manages stored import sessions.
type SessionsController struct {
	sessions SessionManager
	queue    TaskQueue
}

// NewSessionsController creates a controller. queue may be nil, in which
// case enrichment runs inside the request.
func NewSessionsController(manager SessionManager, queue TaskQueue) *SessionsController {
	return &SessionsController{sessions: manager, queue: queue}
}

type CreateSessionRequest struct {
	Text              string `json:"text"`
	Source            string `json:"source,omitempty"`
	Enrich            bool   `json:"enrich,omitempty"`
	LegacyInlineSplit *bool  `json:"legacy_inline_split,omitempty"`
}

// EnrichResponse reports the outcome of an inline enrichment.
type EnrichResponse struct {
	Session *entities.ImportSession `json:"session"`
	Summary matching.Summary        `json:"summary"`
	Warning string                  `json:"warning,omitempty"`
}

// EnqueuedResponse is returned when enrichment was handed to the task queue.
type EnqueuedResponse struct {
	SessionID uint   `json:"session_id"`
	TaskID    string `json:"task_id"`
}

// Create handles POST /api/sessions
func (sc *SessionsController) Create(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	source := req.Source
	if source == "" {
		source = defaultSessionSource
	}
	opts := sc.sessions.ParserOptions()
	if req.LegacyInlineSplit != nil {
		opts.LegacyInlineSplit = *req.LegacyInlineSplit
	}

	session, err := sc.sessions.CreateSession(source, req.Text, opts)
	if err != nil {
		respondInternalError(c, err, "create session")
		return
	}

	if !req.Enrich {
		respondCreated(c, session)
		return
	}
	sc.enrich(c, session.ID, http.StatusCreated)
}

// List handles GET /api/sessions
func (sc *SessionsController) List(c *gin.Context) {
	limit, offset := parsePagination(c)

	list, total, err := sc.sessions.ListSessions(limit, offset)
	if err != nil {
		respondInternalError(c, err, "list sessions")
		return
	}
	if list == nil {
		list = []entities.ImportSession{}
	}

	c.JSON(http.StatusOK, paginated(list, total, limit, offset))
}

// Get handles GET /api/sessions/:id
func (sc *SessionsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	session, err := sc.sessions.GetSession(id)
	if err != nil {
		sc.respondSessionError(c, err, "get session")
		return
	}

	c.JSON(http.StatusOK, session)
}

// Delete handles DELETE /api/sessions/:id
func (sc *SessionsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := sc.sessions.DeleteSession(id); err != nil {
		sc.respondSessionError(c, err, "delete session")
		return
	}

	c.Status(http.StatusNoContent)
}

// Enrich handles POST /api/sessions/:id/enrich
// Queued when a task queue is configured, unless ?sync=true is given.
func (sc *SessionsController) Enrich(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := sc.sessions.GetSession(id); err != nil {
		sc.respondSessionError(c, err, "enrich session")
		return
	}

	sc.enrich(c, id, http.StatusOK)
}

// Export handles GET /api/sessions/:id/export
func (sc *SessionsController) Export(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var buf bytes.Buffer
	result, err := sc.sessions.ExportSession(id, &buf)
	if err != nil {
		sc.respondSessionError(c, err, "export session")
		return
	}

	sendCSV(c, buf.Bytes(), result)
}

// enrich runs or enqueues enrichment of an existing session. status is used
// for the inline response.
func (sc *SessionsController) enrich(c *gin.Context, id uint, status int) {
	if sc.queue != nil && c.Query("sync") != "true" {
		taskID, err := sc.queue.Enqueue(tasks.EnrichSessionTask{SessionID: id})
		if err != nil {
			respondInternalError(c, err, "enqueue enrichment")
			return
		}
		respondAccepted(c, "enrichment queued", EnqueuedResponse{SessionID: id, TaskID: taskID})
		return
	}

	session, outcome, err := sc.sessions.EnrichSession(c.Request.Context(), id)
	if err != nil {
		sc.respondSessionError(c, err, "enrich session")
		return
	}

	c.JSON(status, EnrichResponse{
		Session: session,
		Summary: outcome.Summary,
		Warning: outcome.Warning,
	})
}

func (sc *SessionsController) respondSessionError(c *gin.Context, err error, context string) {
	if errors.Is(err, sessions.ErrSessionNotFound) {
		respondNotFound(c, "import session")
		return
	}
	respondInternalError(c, err, context)
}
