package http

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Roland-02/List2Letterboxd/internal/entities"
	"github.com/Roland-02/List2Letterboxd/internal/exporters"
)

const csvContentType = "text/csv; charset=utf-8"

// PipelineController exposes the parse, match and export steps on
// transient lists that are never stored.
type PipelineController struct {
	pipeline Pipeline
}

func NewPipelineController(pipeline Pipeline) *PipelineController {
	return &PipelineController{pipeline: pipeline}
}

type ParseRequest struct {
	Text              string `json:"text"`
	LegacyInlineSplit *bool  `json:"legacy_inline_split,omitempty"`
}

type ParseResponse struct {
	Entries []entities.Entry `json:"entries"`
	Count   int              `json:"count"`
}

type MatchRequest struct {
	Entries  []entities.Entry `json:"entries"`
	Language string           `json:"language,omitempty"`
}

type ExportRequest struct {
	Entries []entities.Entry `json:"entries"`
}

// Parse handles POST /api/parse
func (pc *PipelineController) Parse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	opts := pc.pipeline.ParserOptions()
	if req.LegacyInlineSplit != nil {
		opts.LegacyInlineSplit = *req.LegacyInlineSplit
	}

	entries := pc.pipeline.ParseWith(req.Text, opts)
	c.JSON(http.StatusOK, ParseResponse{Entries: entries, Count: len(entries)})
}

// Match handles POST /api/match
// A failed lookup is still a 200: the entries come back unenriched with a warning.
func (pc *PipelineController) Match(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.Entries == nil {
		req.Entries = []entities.Entry{}
	}

	outcome, _ := pc.pipeline.Match(c.Request.Context(), req.Entries, req.Language)
	c.JSON(http.StatusOK, outcome)
}

// Export handles POST /api/export
func (pc *PipelineController) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	var buf bytes.Buffer
	result, err := pc.pipeline.Export(&buf, req.Entries)
	if err != nil {
		respondInternalError(c, err, "export entries")
		return
	}

	sendCSV(c, buf.Bytes(), result)
}

func sendCSV(c *gin.Context, data []byte, result exporters.ExportResult) {
	c.Header("Content-Disposition", `attachment; filename="`+exporters.LetterboxdFileName+`"`)
	c.Header("X-Rows-Written", strconv.Itoa(result.RowsWritten))
	c.Header("X-Entries-Skipped", strconv.Itoa(result.EntriesSkipped))
	c.Data(http.StatusOK, csvContentType, data)
}
