package tmdb

import (
	"context"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Roland-02/List2Letterboxd/internal/matching"
)

const (
	DefaultCandidateLimit = 5
	DefaultLanguage       = "en-US"
	DefaultConcurrency    = 10
	MaxConcurrency        = 50
)

// Matcher answers batched match requests by searching TMDB once per query.
// It implements matching.Service, so the merger can use it in-process.
type Matcher struct {
	searcher       Searcher
	cache          *Cache
	candidateLimit int
}

var _ matching.Service = (*Matcher)(nil)

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithCache enables result caching.
func WithCache(cache *Cache) MatcherOption {
	return func(m *Matcher) {
		m.cache = cache
	}
}

// WithCandidateLimit caps how many alternatives are returned per query.
func WithCandidateLimit(limit int) MatcherOption {
	return func(m *Matcher) {
		if limit > 0 {
			m.candidateLimit = limit
		}
	}
}

func NewMatcher(searcher Searcher, opts ...MatcherOption) *Matcher {
	m := &Matcher{
		searcher:       searcher,
		candidateLimit: DefaultCandidateLimit,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ClampConcurrency bounds the requested parallelism to [1, MaxConcurrency].
// Zero selects DefaultConcurrency.
func ClampConcurrency(n int) int {
	switch {
	case n == 0:
		return DefaultConcurrency
	case n < 1:
		return 1
	case n > MaxConcurrency:
		return MaxConcurrency
	default:
		return n
	}
}

// Match implements matching.Service.
func (m *Matcher) Match(ctx context.Context, request matching.Request) (*matching.Response, error) {
	if len(request.Queries) == 0 {
		return nil, matching.ErrEmptyBatch
	}
	resp := m.MatchBatch(ctx, request)
	return &resp, nil
}

// MatchBatch resolves every query and returns one slot per query in input
// order. Individual lookup failures produce a slot with only the input title.
func (m *Matcher) MatchBatch(ctx context.Context, request matching.Request) matching.Response {
	language := request.Language
	if language == "" {
		language = DefaultLanguage
	}

	matches := make([]matching.Match, len(request.Queries))
	var g errgroup.Group
	g.SetLimit(ClampConcurrency(request.Concurrency))
	for i, query := range request.Queries {
		g.Go(func() error {
			matches[i] = m.matchOne(ctx, query, language)
			return nil
		})
	}
	_ = g.Wait()

	return matching.Response{Matches: matches}
}

func (m *Matcher) matchOne(ctx context.Context, query matching.Query, language string) matching.Match {
	out := matching.Match{InputTitle: query.Title}

	results, err := m.search(ctx, strings.TrimSpace(query.Title), language)
	if err != nil {
		log.Printf("[MATCH] TMDB search for %q failed: %v", query.Title, err)
		return out
	}

	var works, films []Result
	for _, r := range results {
		switch r.MediaType {
		case MediaTypeMovie:
			works = append(works, r)
			films = append(films, r)
		case MediaTypeTV:
			works = append(works, r)
		}
	}

	out.Candidates = m.candidates(films)

	best := pickBest(works, query.Title, query.Year)
	if best == nil {
		return out
	}

	title := best.DisplayTitle()
	id := best.ID
	out.Title = &title
	out.TMDBID = &id
	out.ReleaseYear = best.Year()
	if best.MediaType == MediaTypeTV {
		isTV := true
		out.IsTVShow = &isTV
	}
	return out
}

func (m *Matcher) search(ctx context.Context, title, language string) ([]Result, error) {
	if m.cache != nil {
		if results, ok := m.cache.Get(ctx, language, title); ok {
			return results, nil
		}
	}

	resp, err := m.searcher.SearchMulti(ctx, title, SearchOptions{Language: language})
	if err != nil {
		return nil, err
	}

	if m.cache != nil {
		m.cache.Put(ctx, language, title, resp.Results)
	}
	return resp.Results, nil
}

// candidates converts the first results, in TMDB order, into match candidates.
func (m *Matcher) candidates(films []Result) []matching.MatchCandidate {
	if len(films) > m.candidateLimit {
		films = films[:m.candidateLimit]
	}
	out := make([]matching.MatchCandidate, 0, len(films))
	for _, r := range films {
		title := r.DisplayTitle()
		id := r.ID
		c := matching.MatchCandidate{
			Title:       &title,
			TMDBID:      &id,
			ReleaseYear: r.Year(),
		}
		if r.Overview != "" {
			summary := r.Overview
			c.Summary = &summary
		}
		out = append(out, c)
	}
	return out
}
