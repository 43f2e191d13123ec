package matching

import (
	"errors"
	"fmt"
)

// ErrEmptyBatch is returned when a request carries no queries.
var ErrEmptyBatch = errors.New("match request has no queries")

// ServiceError is a non-2xx answer from the match service.
type ServiceError struct {
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("match service error: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("match service error: HTTP %d: %s", e.StatusCode, e.Body)
}
