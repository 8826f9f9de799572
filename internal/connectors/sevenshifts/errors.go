package sevenshifts

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

// RateLimitError represents a rate limit exceeded error with reset time.
// Body holds the raw 429 response for logging.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
	Body      []byte
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("7shifts: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// Is lets errors.Is match domain.ErrRateLimited.
func (e *RateLimitError) Is(target error) bool {
	return target == domain.ErrRateLimited
}

// APIError is a response with a status code above 299.
// Body holds the raw response for logging.
type APIError struct {
	StatusCode int
	Method     string
	URL        string
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("7shifts: API error %d: %s (%s %s)", e.StatusCode, msg, e.Method, e.URL)
}

// NotFoundError is returned when a single entity lookup finds nothing.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id '%s' not found", e.Entity, e.ID)
}

// Is lets errors.Is match domain.ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == domain.ErrNotFound
}

// newAPIError builds an APIError, pulling a message out of the usual
// JSON error shapes when the body has one.
func newAPIError(resp *http.Response, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Body:       body,
	}
	if resp.Request != nil {
		apiErr.Method = resp.Request.Method
		apiErr.URL = resp.Request.URL.String()
	}

	var payload struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
		Errors  []any  `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Message != "":
			apiErr.Message = payload.Message
		case payload.Error != nil:
			apiErr.Message = fmt.Sprint(payload.Error)
		case len(payload.Errors) > 0:
			parts := make([]string, 0, len(payload.Errors))
			for _, e := range payload.Errors {
				parts = append(parts, fmt.Sprint(e))
			}
			apiErr.Message = strings.Join(parts, "; ")
		}
	}
	return apiErr
}

// ResponseBody returns the body of the API or rate limit error inside
// err, if any.
func ResponseBody(err error) []byte {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Body
	}
	var limitErr *RateLimitError
	if errors.As(err, &limitErr) {
		return limitErr.Body
	}
	return nil
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return errors.Is(err, domain.ErrNotFound)
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// IsForbidden checks if the error indicates a forbidden resource.
func IsForbidden(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusForbidden
	}
	return false
}
