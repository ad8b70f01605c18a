package apiclient

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork is returned when the request never produced a response.
	ErrNetwork = errors.New("apiclient: network failure")
	// ErrDecode is returned when a response body is not the expected JSON.
	ErrDecode = errors.New("apiclient: malformed response")
	// ErrUnsupported is returned for operations the API does not expose.
	ErrUnsupported = errors.New("apiclient: operation not supported")
)

// StatusError is returned for any non-2xx response. The body is not parsed.
type StatusError struct {
	Resource   string
	Operation  string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("apiclient: %s %s: unexpected status %d", e.Operation, e.Resource, e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == 404
}
