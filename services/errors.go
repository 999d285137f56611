package services

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuthentication covers bad credentials and tokens the backend no
	// longer accepts. It always ends the session.
	ErrAuthentication = errors.New("authentication failed")
	// ErrAuthorization means the role or country scope does not allow the call.
	ErrAuthorization = errors.New("not authorized")
	ErrNotFound      = errors.New("not found")
	// ErrNetwork means the backend could not be reached or answered garbage.
	ErrNetwork = errors.New("backend unreachable")

	ErrEmptyCart = errors.New("cart is empty")
)

// APIError is a non-2xx answer from the ordering API.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Unwrap lets callers match an APIError against the sentinel errors above.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrAuthentication
	case http.StatusForbidden:
		return ErrAuthorization
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// DetailOr returns the backend's detail text carried by err, or fallback.
func DetailOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
