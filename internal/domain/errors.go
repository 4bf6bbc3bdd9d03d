package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigMissing means a required credential was not configured.
	ErrConfigMissing = errors.New("API configuration missing")
	// ErrNoData means the price sheet had no data rows after the header.
	ErrNoData = errors.New("no data found in sheet")
)

// UpstreamError is a non-success HTTP status from an external service.
// Body holds a truncated copy of the response for logs only.
type UpstreamError struct {
	Service string
	Status  int
	Body    string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: upstream status %d", e.Service, e.Status)
	}
	return fmt.Sprintf("%s: upstream status %d: %s", e.Service, e.Status, e.Body)
}
