package schoolapi

import (
	"errors"
	"fmt"
)

// ErrNotFound marks an upstream 404 so handlers can map it to a not-found
// view rather than a generic failure.
var ErrNotFound = errors.New("school api: not found")

// StatusError wraps any other non-2xx upstream response.
type StatusError struct {
	Endpoint string
	Status   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("school api: %s returned status %d", e.Endpoint, e.Status)
}

// IsNotFound reports whether err maps to an upstream 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
