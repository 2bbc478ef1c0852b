package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

// APIError is the single failure shape returned for any request that did
// not complete with a 2xx status. Status is 0 when no response arrived.
type APIError struct {
	Method      string
	Path        string
	Status      int
	Message     string
	RawBody     []byte
	RequestBody []byte
	RequestID   string
	cause       error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.cause }

// Is lets callers match on the sentinel errors above with errors.Is.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnavailable:
		return e.Status == 0
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrConflict:
		return e.Status == http.StatusConflict
	}
	return false
}

// Transport reports whether the request never got a response.
func (e *APIError) Transport() bool { return e.Status == 0 }

// AsAPIError unwraps err to an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
