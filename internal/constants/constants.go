package constants

import "time"

// Canvas instance defaults.
const (
	// DefaultBaseURL is the Canvas instance queried when no base URL is configured.
	DefaultBaseURL = "https://georgetown.instructure.com"

	// APIPrefix is the path prefix of the Canvas REST API.
	APIPrefix = "/api/v1"

	// TokenFileName is the name of the file holding the bearer token.
	TokenFileName = ".canvastoken"

	// ConfigDirName is the per-user directory holding config and token.
	ConfigDirName = ".canvas"

	// ConfigFileName is the config file name (without extension) inside ConfigDirName.
	ConfigFileName = "config"

	// EnvPrefix is the prefix of environment variables read by the CLI.
	EnvPrefix = "CANVAS"
)

// CandidateBaseURLs are probed in order by base-URL discovery.
//
//nolint:gochecknoglobals // fixed default list, overridable through config
var CandidateBaseURLs = []string{
	"https://canvas.georgetown.edu",
	"https://georgetown.instructure.com",
	"https://georgetownuniversity.instructure.com",
}

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ProbeHTTPTimeout bounds each base-URL discovery attempt.
	ProbeHTTPTimeout = 10 * time.Second
)

// Retry limits. Retries are off unless configured.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 30 * time.Second
)

// Pagination and display limits.
const (
	// StandardPageSize is the per_page requested from list endpoints.
	StandardPageSize = 100

	// MaxDemoItems limits list items shown by the demo action.
	MaxDemoItems = 5

	// DemoCourseQuery is the course searched for by the demo action.
	DemoCourseQuery = "6725"

	// TokenPreviewLength is how many token characters discovery prints.
	TokenPreviewLength = 4
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"

	// FormatAuto picks table on a terminal and JSON otherwise.
	FormatAuto = "auto"
)

// UI and display constants.
const (
	// CheckMarkSymbol marks a successful probe.
	CheckMarkSymbol = "✓"

	// CrossMarkSymbol marks a failed probe.
	CrossMarkSymbol = "✗"

	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// ErrorPreviewLength truncates probe errors in human output.
	ErrorPreviewLength = 100
)
