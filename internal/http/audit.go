package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Roland-02/List2Letterboxd/internal/entities"
)

type AuditController struct {
	auditLog AuditLog
}

func NewAuditController(auditLog AuditLog) *AuditController {
	return &AuditController{
		auditLog: auditLog,
	}
}

// GetAuditEvents returns paginated audit events as JSON
// GET /api/audit/events?type=enrich&limit=25&offset=0
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	limit, offset := parsePagination(c)
	eventType := entities.AuditEventType(c.Query("type"))

	events, total, err := ac.auditLog.GetEvents(eventType, limit, offset)
	if err != nil {
		respondInternalError(c, err, "load audit events")
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}

	c.JSON(http.StatusOK, paginated(events, total, limit, offset))
}

// GetSessionHistory returns every event recorded for one session
// GET /api/sessions/:id/history
func (ac *AuditController) GetSessionHistory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	events, err := ac.auditLog.GetSessionHistory(id)
	if err != nil {
		respondInternalError(c, err, "load session history")
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}

	c.JSON(http.StatusOK, gin.H{"session_id": id, "events": events})
}
