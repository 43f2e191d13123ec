package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Roland-02/List2Letterboxd/internal/database"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	db       *database.Database
	version  string
	matching bool
}

func NewHealthController(db *database.Database, version string, matching bool) *HealthController {
	return &HealthController{
		db:       db,
		version:  version,
		matching: matching,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	// Matching is optional: without it entries simply stay unresolved.
	if h.matching {
		checks["matching"] = "configured"
	} else {
		checks["matching"] = "not configured"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
