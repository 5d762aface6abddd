// Package apperrors defines the error taxonomy shared by services and
// handlers, and the mapping from domain errors to HTTP responses.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrForbidden is returned when the acting user's active household does
	// not own the target resource. Distinct from not-found: the resource
	// exists, the caller may not touch it.
	ErrForbidden = errors.New("you do not have permission to access this resource")
	// ErrNotFound is returned when a referenced resource or user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when an action would violate a membership
	// invariant, e.g. adding a user who is already a member.
	ErrConflict = errors.New("already a member of this household")
	// ErrNoActiveHousehold gates creation of scoped resources for users
	// without any household.
	ErrNoActiveHousehold = errors.New("you must add a household first")
)

// ValidationError carries field-keyed messages for malformed or duplicate
// input. Handlers surface it inline rather than as a generic failure.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// ErrorResponse is the wire shape of a failed request.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// HTTPError pairs a status code with a response body.
type HTTPError struct {
	StatusCode int
	Body       ErrorResponse
}

// MapErrorToHTTP translates a domain error into an HTTP status and body.
// Unknown errors become opaque 500s.
func MapErrorToHTTP(err error) *HTTPError {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return &HTTPError{
			StatusCode: http.StatusUnprocessableEntity,
			Body:       ErrorResponse{Error: verr.Error(), Fields: verr.Fields},
		}
	case errors.Is(err, ErrNoActiveHousehold):
		return &HTTPError{
			StatusCode: http.StatusUnprocessableEntity,
			Body:       ErrorResponse{Error: err.Error()},
		}
	case errors.Is(err, ErrForbidden):
		return &HTTPError{
			StatusCode: http.StatusForbidden,
			Body:       ErrorResponse{Error: ErrForbidden.Error()},
		}
	case errors.Is(err, ErrNotFound):
		return &HTTPError{
			StatusCode: http.StatusNotFound,
			Body:       ErrorResponse{Error: err.Error()},
		}
	case errors.Is(err, ErrConflict):
		return &HTTPError{
			StatusCode: http.StatusConflict,
			Body:       ErrorResponse{Error: err.Error()},
		}
	default:
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Body:       ErrorResponse{Error: "internal server error"},
		}
	}
}
