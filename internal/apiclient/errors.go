package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthenticated is returned for every 401 response. By the time a
// caller sees it the session store has already been cleared.
var ErrUnauthenticated = errors.New("unauthorized")

// APIError is a non-2xx response from the backend
type APIError struct {
	StatusCode int
	Method     string
	Path       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API Error: %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthenticated
	}
	return nil
}

// StatusCode extracts the HTTP status carried by err, if any
func StatusCode(err error) (int, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}
	return 0, false
}

// IsUnauthenticated reports whether err came from a 401 response
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}
