package canvas

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error kinds. Concrete errors wrap one of these so callers can branch with errors.Is.
var (
	ErrCredentialNotFound = errors.New("credential not found")
	ErrCredentialEmpty    = errors.New("credential is empty")
	ErrAuthentication     = errors.New("authentication failed")
	ErrAuthorization      = errors.New("not authorized")
	ErrResourceNotFound   = errors.New("resource not found")
	ErrNetwork            = errors.New("network error")
	ErrInvalidArgument    = errors.New("invalid argument")
)

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrBaseURLRequired     = errors.New("base URL is required")
	ErrInvalidBaseURL      = fmt.Errorf("%w: invalid base URL", ErrInvalidArgument)
	ErrNoCandidates        = fmt.Errorf("%w: no candidate URLs", ErrInvalidArgument)
	ErrUnexpectedResponse  = errors.New("unexpected response")
	ErrNoTokenManager      = errors.New("no token manager configured")
	ErrCourseNotFound      = fmt.Errorf("%w: no course matches", ErrResourceNotFound)
	ErrCourseIDRequired    = fmt.Errorf("%w: --course-id is required", ErrInvalidArgument)
	ErrCourseNameRequired  = fmt.Errorf("%w: --course-name is required", ErrInvalidArgument)
	ErrCourseRefRequired   = fmt.Errorf("%w: --course-id or --course-name is required", ErrInvalidArgument)
	ErrUnknownAction       = fmt.Errorf("%w: unknown action", ErrInvalidArgument)
	ErrUnknownOutputFormat = fmt.Errorf("%w: unknown output format", ErrInvalidArgument)
)

// APIError is a single entry of the Canvas "errors" array.
type APIError struct {
	Message string `json:"message" yaml:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Body status Canvas uses for a missing, expired or invalid token.
const statusUnauthenticated = "unauthenticated"

// ResponseError represents a non-2xx response from the Canvas API.
//
// Canvas answers 401 both for a rejected token and for a valid token lacking
// a permission. Only the former carries a WWW-Authenticate challenge (or the
// "unauthenticated" body status), so Challenge decides which kind a 401 is.
type ResponseError struct {
	StatusCode int        `json:"-"                yaml:"-"`
	Status     string     `json:"status,omitempty" yaml:"status,omitempty"`
	Errors     []APIError `json:"errors"           yaml:"errors"`
	// Challenge is the WWW-Authenticate response header, if any.
	Challenge string `json:"-" yaml:"-"`
}

// Error implements the error interface for ResponseError.
func (e *ResponseError) Error() string {
	var messages []string

	for _, apiErr := range e.Errors {
		if apiErr.Message != "" {
			messages = append(messages, apiErr.Message)
		}
	}

	if len(messages) == 0 {
		return fmt.Sprintf("canvas API returned status %d", e.StatusCode)
	}

	return fmt.Sprintf("canvas API returned status %d: %s", e.StatusCode, strings.Join(messages, "; "))
}

// Is maps the HTTP status onto the error kinds.
func (e *ResponseError) Is(target error) bool {
	switch target {
	case ErrAuthentication:
		return e.StatusCode == http.StatusUnauthorized && e.tokenRejected()
	case ErrAuthorization:
		return e.StatusCode == http.StatusForbidden ||
			(e.StatusCode == http.StatusUnauthorized && !e.tokenRejected())
	case ErrResourceNotFound:
		return e.StatusCode == http.StatusNotFound
	default:
		return false
	}
}

func (e *ResponseError) tokenRejected() bool {
	return e.Challenge != "" || e.Status == statusUnauthenticated
}

// FirstError returns the first error or nil.
func (e *ResponseError) FirstError() *APIError {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}

	return nil
}

// ParseResponseError builds a ResponseError from a response. Canvas
// sometimes answers with HTML or with an "errors" object instead of an array;
// in that case the raw body becomes the single message. header may be nil.
func ParseResponseError(statusCode int, header http.Header, data []byte) *ResponseError {
	errResp := &ResponseError{
		StatusCode: statusCode,
		Challenge:  header.Get("WWW-Authenticate"),
	}

	var body struct {
		Status string          `json:"status"`
		Errors json.RawMessage `json:"errors"`
	}

	if err := json.Unmarshal(data, &body); err != nil {
		if text := strings.TrimSpace(string(data)); text != "" && !strings.HasPrefix(text, "<") {
			errResp.Errors = []APIError{{Message: text}}
		}

		return errResp
	}

	errResp.Status = body.Status

	var list []APIError
	if err := json.Unmarshal(body.Errors, &list); err == nil {
		errResp.Errors = list

		return errResp
	}

	if len(body.Errors) > 0 && string(body.Errors) != "null" {
		errResp.Errors = []APIError{{Message: string(body.Errors)}}
	}

	return errResp
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrResourceNotFound)
}

// IsUnauthorized checks if the error is an authentication error, i.e. the
// token itself was rejected.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrAuthentication)
}

// IsForbidden checks if the error is an authorization error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrAuthorization)
}
