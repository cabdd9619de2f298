package canvas

import (
	"context"
	"time"
)

// UsersClient provides access to user endpoints.
type UsersClient interface {
	// Current fetches the authenticated principal.
	Current(ctx context.Context) (*User, error)
}

// CoursesClient provides access to course endpoints.
type CoursesClient interface {
	List(ctx context.Context, params *QueryParams) ([]Course, error)
	Get(ctx context.Context, courseID int64) (*Course, error)
	// Find returns the first course whose name or course code contains query,
	// case-insensitively, or nil when none does.
	Find(ctx context.Context, query string) (*Course, error)
	ListStudents(ctx context.Context, courseID int64, params *QueryParams) ([]Student, error)
}

// AssignmentsClient provides access to assignment endpoints.
type AssignmentsClient interface {
	List(ctx context.Context, courseID int64, params *QueryParams) ([]Assignment, error)
}

// Client is the read-only façade over a Canvas instance.
type Client interface {
	Users() UsersClient
	Courses() CoursesClient
	Assignments() AssignmentsClient
	// BaseURL returns the normalized base URL the client talks to.
	BaseURL() string
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a canvas.Client.
//
// BaseURL is the root of the Canvas instance (e.g.
// "https://school.instructure.com"); canvasclient.New trims a trailing slash
// and adds "https://" when no scheme is present. AccessToken is sent as a
// Bearer token on every request. TokenFile is read lazily on every request
// when AccessToken is empty.
//
// RetryMax defaults to 0, meaning failed requests are never retried.
type Config struct {
	BaseURL     string
	AccessToken string
	TokenFile   string

	HTTPTimeout  time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	UserAgent    string

	// Debug enables request/response logging when a Logger is provided.
	Debug  bool
	Logger Logger

	// Interceptors run around every request.
	Interceptors *InterceptorChain
}
