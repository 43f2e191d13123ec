package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Roland-02/List2Letterboxd/internal/matching"
)

// MatchServiceController serves the batched title lookup other instances
// (and the CLI) call as their match service.
type MatchServiceController struct {
	matcher BatchMatcher
}

// NewMatchServiceController creates a controller. A nil matcher answers 503.
func NewMatchServiceController(matcher BatchMatcher) *MatchServiceController {
	return &MatchServiceController{matcher: matcher}
}

// Match handles POST /tmdb/match
// Queries may be {"title": "..."} objects or bare strings.
func (mc *MatchServiceController) Match(c *gin.Context) {
	if mc.matcher == nil {
		respondError(c, http.StatusServiceUnavailable, CodeMatchingUnavailable, "TMDB access token not configured")
		return
	}

	var req matching.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if len(req.Queries) == 0 {
		respondBadRequest(c, "queries must be a non-empty list")
		return
	}

	c.JSON(http.StatusOK, mc.matcher.MatchBatch(c.Request.Context(), req))
}
