package pipedrive

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed API call by its HTTP status code.
type ErrorKind int

// Error kinds, one per status-code bucket.
const (
	KindUnclassified ErrorKind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindRateLimited
	KindServerError
)

func (k ErrorKind) String() string {
	switch k {
	case KindBadRequest:
		return "bad request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindRateLimited:
		return "rate limited"
	case KindServerError:
		return "server error"
	case KindUnclassified:
		return "unclassified"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// KindForStatus maps an HTTP status code to its ErrorKind. Codes without a
// dedicated bucket (including 2xx) map to KindUnclassified.
func KindForStatus(code int) ErrorKind {
	switch {
	case code == http.StatusBadRequest:
		return KindBadRequest
	case code == http.StatusUnauthorized:
		return KindUnauthorized
	case code == http.StatusForbidden:
		return KindForbidden
	case code == http.StatusNotFound:
		return KindNotFound
	case code == http.StatusTooManyRequests:
		return KindRateLimited
	case code >= http.StatusInternalServerError:
		return KindServerError
	default:
		return KindUnclassified
	}
}

// APIError represents a non-2xx response from the Pipedrive API.
type APIError struct {
	Kind       ErrorKind `json:"kind"        yaml:"kind"`
	StatusCode int       `json:"status_code" yaml:"status_code"`
	Method     string    `json:"method"      yaml:"method"`
	Path       string    `json:"path"        yaml:"path"`
	Message    string    `json:"message"     yaml:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s (status: %d)", e.Kind, e.StatusCode)
	if e.Method != "" || e.Path != "" {
		msg = fmt.Sprintf("%s %s: %s", e.Method, e.Path, msg)
	}

	if e.Message != "" {
		msg += ": " + e.Message
	}

	return msg
}

// Is reports whether target is an APIError of the same kind. Sentinels such as
// ErrNotFound only carry a kind, so errors.Is(err, ErrNotFound) matches any 404.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

// Sentinel API errors, compared by kind.
var (
	ErrUnclassified = &APIError{Kind: KindUnclassified}
	ErrBadRequest   = &APIError{Kind: KindBadRequest}
	ErrUnauthorized = &APIError{Kind: KindUnauthorized}
	ErrForbidden    = &APIError{Kind: KindForbidden}
	ErrNotFound     = &APIError{Kind: KindNotFound}
	ErrRateLimited  = &APIError{Kind: KindRateLimited}
	ErrServerError  = &APIError{Kind: KindServerError}
)

// Static configuration errors.
var (
	ErrConfigRequired  = errors.New("config is required")
	ErrBaseURLRequired = errors.New("base URL is required")
	ErrTokenRequired   = errors.New("API token is required")
	ErrInvalidBaseURL  = errors.New("invalid base URL")
	ErrValidation      = errors.New("validation failed")
	ErrInvalidResponse = errors.New("invalid response envelope")
)

// ValidationError is returned before any request is sent when an argument has
// the wrong shape.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}

	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is(err, ErrValidation) match every ValidationError.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// KindOf returns the kind of the first APIError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}

	return KindUnclassified, false
}

// IsBadRequest checks if the error is a 400 response.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

// IsUnauthorized checks if the error is a 401 response.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsForbidden checks if the error is a 403 response.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsNotFound checks if the error is a 404 response.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRateLimited checks if the error is a 429 response.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsServerError checks if the error is a 5xx response.
func IsServerError(err error) bool {
	return errors.Is(err, ErrServerError)
}

// ParseErrorBody extracts the human readable message from an error envelope.
// Bodies that are not JSON or carry no message yield an empty string.
func ParseErrorBody(data []byte) string {
	var body struct {
		Error     string `json:"error"`
		ErrorInfo string `json:"error_info"`
	}

	err := json.Unmarshal(data, &body)
	if err != nil {
		return ""
	}

	if body.Error != "" && body.ErrorInfo != "" {
		return body.Error + " (" + body.ErrorInfo + ")"
	}

	return body.Error
}
