package matching

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Query is one title to resolve. Year is set only when a plausible
// "(YYYY)" suffix was peeled off the title.
type Query struct {
	Title string `json:"title"`
	Year  *int   `json:"year,omitempty"`
}

// UnmarshalJSON accepts both {"title": "..."} objects and bare strings.
func (q *Query) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var title string
		if err := json.Unmarshal(data, &title); err != nil {
			return err
		}
		*q = Query{Title: title}
		return nil
	}

	type plain Query
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("query must be a string or an object with a title: %w", err)
	}
	*q = Query(p)
	return nil
}

// Request is the batched body sent to the match service.
// Concurrency is a hint for the service and is not enforced by the client.
type Request struct {
	Queries     []Query `json:"queries"`
	Language    string  `json:"language"`
	Concurrency int     `json:"concurrency"`
}

// MatchCandidate is an alternative the service considered for a query.
type MatchCandidate struct {
	Title       *string `json:"title,omitempty"`
	TMDBID      *int64  `json:"tmdb_id,omitempty"`
	ReleaseYear *int    `json:"release_year,omitempty"`
	Summary     *string `json:"summary,omitempty"`
}

// Match is the result slot for one query.
type Match struct {
	InputTitle  string           `json:"input_title"`
	Title       *string          `json:"title,omitempty"`
	TMDBID      *int64           `json:"tmdb_id,omitempty"`
	ReleaseYear *int             `json:"release_year,omitempty"`
	Candidates  []MatchCandidate `json:"candidates,omitempty"`
	IsTVShow    *bool            `json:"is_tv_show,omitempty"`
}

// IsNonFilm reports whether the service flagged the result as a non-film work.
func (m Match) IsNonFilm() bool {
	return m.IsTVShow != nil && *m.IsTVShow
}

// Response is positionally aligned with Request.Queries.
type Response struct {
	Matches []Match `json:"matches"`
}
