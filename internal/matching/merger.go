package matching

import (
	"context"
	"log"
	"time"

	"github.com/Roland-02/List2Letterboxd/internal/entities"
)

const (
	DefaultLanguage    = "en-US"
	DefaultConcurrency = 10
)

// Service is anything that can answer a batched match request.
// *Client talks to a remote service; the tmdb matcher answers in-process.
type Service interface {
	Match(ctx context.Context, request Request) (*Response, error)
}

// Merger enriches parsed entries with one batched lookup per call.
type Merger struct {
	service     Service
	language    string
	concurrency int
	now         func() time.Time
}

// NewMerger creates a merger. Empty language and non-positive concurrency
// fall back to the defaults.
func NewMerger(service Service, language string, concurrency int) *Merger {
	if language == "" {
		language = DefaultLanguage
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Merger{
		service:     service,
		language:    language,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// WithLanguage returns a copy of the merger that requests results in language.
func (m *Merger) WithLanguage(language string) *Merger {
	if language == "" || language == m.language {
		return m
	}
	clone := *m
	clone.language = language
	return &clone
}

// Language returns the language tag sent with each batch.
func (m *Merger) Language() string {
	return m.language
}

// BuildRequest derives one query per entry, in entry order.
func (m *Merger) BuildRequest(entries []entities.Entry) Request {
	now := m.now()
	queries := make([]Query, len(entries))
	for i, e := range entries {
		title, year := SplitYear(e.Title, now)
		queries[i] = Query{Title: title, Year: year}
	}
	return Request{
		Queries:     queries,
		Language:    m.language,
		Concurrency: m.concurrency,
	}
}

// Enrich resolves entries against the match service in a single call.
//
// On any failure the error is logged and returned together with an unchanged
// copy of entries, so callers can always continue with the returned list.
func (m *Merger) Enrich(ctx context.Context, entries []entities.Entry) ([]entities.Entry, error) {
	if len(entries) == 0 {
		return []entities.Entry{}, nil
	}

	resp, err := m.service.Match(ctx, m.BuildRequest(entries))
	if err != nil {
		log.Printf("[MATCH] Lookup of %d titles failed, keeping entries unenriched: %v", len(entries), err)
		return entities.CloneEntries(entries), err
	}

	return Merge(entries, resp), nil
}

// Merge zips the response onto entries by position and returns a new list.
//
// Results flagged as non-film are dropped along with their entry. A missing
// slot leaves its entry unresolved. Only title, matched id and candidates
// are taken from the response.
func Merge(entries []entities.Entry, resp *Response) []entities.Entry {
	var matches []Match
	if resp != nil {
		matches = resp.Matches
	}

	out := make([]entities.Entry, 0, len(entries))
	for i, entry := range entries {
		merged := entry.Clone()
		if i >= len(matches) {
			out = append(out, merged)
			continue
		}

		match := matches[i]
		if match.IsNonFilm() {
			continue
		}
		if match.Title != nil && *match.Title != "" {
			merged.Title = *match.Title
		}
		if match.TMDBID != nil {
			id := *match.TMDBID
			merged.MatchedID = &id
		}
		merged.Candidates = usableCandidates(match.Candidates)
		out = append(out, merged)
	}
	return out
}

// usableCandidates keeps candidates that carry both a title and an id, in service order.
func usableCandidates(in []MatchCandidate) []entities.Candidate {
	var out []entities.Candidate
	for _, c := range in {
		if c.Title == nil || *c.Title == "" || c.TMDBID == nil {
			continue
		}
		candidate := entities.Candidate{Title: *c.Title, ID: *c.TMDBID}
		if c.ReleaseYear != nil {
			year := *c.ReleaseYear
			candidate.ReleaseYear = &year
		}
		if c.Summary != nil {
			summary := *c.Summary
			candidate.Summary = &summary
		}
		out = append(out, candidate)
	}
	return out
}
