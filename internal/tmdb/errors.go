package tmdb

import (
	"errors"
	"fmt"
	"time"
)

// ErrMissingToken is returned when no TMDB read access token is configured.
var ErrMissingToken = errors.New("tmdb access token required")

// APIError is a non-200 answer from TMDB.
type APIError struct {
	StatusCode int
	Latency    time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tmdb search returned %d (latency=%v)", e.StatusCode, e.Latency)
}
