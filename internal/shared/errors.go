package shared

import (
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Table errors
	ErrColumnNotFound    = fmt.Errorf("column not found")
	ErrUnsupportedFormat = fmt.Errorf("unsupported output format")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

// HTTPError reports a non-2xx response from a music API.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "HTTP status error"
	}
	text := http.StatusText(e.StatusCode)
	if text == "" {
		return fmt.Sprintf("HTTP %d %s %s", e.StatusCode, e.Method, e.URL)
	}
	return fmt.Sprintf("HTTP %d (%s) %s %s", e.StatusCode, text, e.Method, e.URL)
}

func (e *HTTPError) Unwrap() error { return ErrAPIRequest }

// APIError is an error object returned inside a successful response body.
//
// Deezer answers quota and parameter problems with status 200 and an "error" field.
type APIError struct {
	Type    string
	Message string
	Code    int
}

func (e *APIError) Error() string {
	if e == nil {
		return "API error"
	}
	msg := strings.TrimSpace(e.Message)
	if e.Type == "" {
		return fmt.Sprintf("API error %d: %s", e.Code, msg)
	}
	return fmt.Sprintf("API error %d (%s): %s", e.Code, e.Type, msg)
}

func (e *APIError) Unwrap() error { return ErrAPIRequest }

// ColumnNotFoundError is returned when an operation names a column the table lacks.
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	if e == nil {
		return ErrColumnNotFound.Error()
	}
	return fmt.Sprintf("%v: %q", ErrColumnNotFound, e.Column)
}

func (e *ColumnNotFoundError) Unwrap() error { return ErrColumnNotFound }
