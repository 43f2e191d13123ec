package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.themoviedb.org/3"

	MediaTypeMovie = "movie"
	MediaTypeTV    = "tv"
)

// Result is one entry of a TMDB multi search. Movies carry Title and
// ReleaseDate, tv shows carry Name and FirstAirDate.
type Result struct {
	ID            int64   `json:"id"`
	MediaType     string  `json:"media_type"`
	Title         string  `json:"title,omitempty"`
	OriginalTitle string  `json:"original_title,omitempty"`
	Name          string  `json:"name,omitempty"`
	OriginalName  string  `json:"original_name,omitempty"`
	Overview      string  `json:"overview,omitempty"`
	ReleaseDate   string  `json:"release_date,omitempty"`
	FirstAirDate  string  `json:"first_air_date,omitempty"`
	Popularity    float64 `json:"popularity,omitempty"`
	VoteCount     int64   `json:"vote_count,omitempty"`
}

// DisplayTitle returns the localized title for movies or the name for tv shows.
func (r Result) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// Names returns every title variant usable for similarity scoring.
func (r Result) Names() []string {
	var names []string
	for _, n := range []string{r.Title, r.OriginalTitle, r.Name, r.OriginalName} {
		if n != "" {
			names = append(names, n)
		}
	}
	return names
}

// Year extracts the release (or first air) year, if TMDB supplied a date.
func (r Result) Year() *int {
	date := r.ReleaseDate
	if date == "" {
		date = r.FirstAirDate
	}
	if len(date) < 4 {
		return nil
	}
	year := 0
	for _, ch := range date[:4] {
		if ch < '0' || ch > '9' {
			return nil
		}
		year = year*10 + int(ch-'0')
	}
	return &year
}

// SearchResponse models a TMDB paginated search response.
type SearchResponse struct {
	Page         int      `json:"page"`
	Results      []Result `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// SearchOptions holds the optional search parameters.
type SearchOptions struct {
	Language string
}

// Searcher is the subset of TMDB used by the matcher.
type Searcher interface {
	SearchMulti(ctx context.Context, query string, opts SearchOptions) (*SearchResponse, error)
}

// Client talks to the TMDB v3 API using a v4 read access token.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a TMDB client. An empty baseURL selects DefaultBaseURL.
func New(token, baseURL string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &Client{
		token:      token,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchMulti searches movies and tv shows at once. Only the first page is fetched.
func (c *Client) SearchMulti(ctx context.Context, query string, opts SearchOptions) (*SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/search/multi")
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	params.Set("page", "1")
	if opts.Language != "" {
		params.Set("language", opts.Language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Latency: latency}
	}

	var payload SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode tmdb response: %w", err)
	}
	return &payload, nil
}
