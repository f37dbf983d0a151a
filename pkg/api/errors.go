package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Errors returned by the client.
var (
	// ErrNotFound indicates the paper does not exist.
	ErrNotFound = errors.New("paper not found")

	// ErrNetworkError indicates the catalog could not be reached.
	ErrNetworkError = errors.New("network error communicating with catalog")

	// ErrInvalidResponse indicates a response body that could not be decoded.
	ErrInvalidResponse = errors.New("invalid response from catalog")
)

// APIError is a non-2xx response from the catalog.
type APIError struct {
	StatusCode int
	Message    string // "error" field of the body, or the status text
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog API error (status %d): %s", e.StatusCode, e.Message)
}

// Is matches ErrNotFound for 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// IsNotFound reports whether err means the requested paper does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsNetworkError reports whether err came from the transport rather than
// from the catalog.
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetworkError)
}
