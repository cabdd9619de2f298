package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/canvas-client/internal/auth"
	"github.com/fivetwenty-io/canvas-client/internal/constants"
	"github.com/fivetwenty-io/canvas-client/internal/logging"
	"github.com/fivetwenty-io/canvas-client/pkg/canvas"
	"github.com/fivetwenty-io/canvas-client/pkg/canvasclient"
)

// Config keys shared by flags, the config file and CANVAS_* variables.
const (
	KeyBaseURL    = "base_url"
	KeyTokenFile  = "token_file"
	KeyOutput     = "output"
	KeyDebug      = "debug"
	KeyCandidates = "candidates"
	KeyRetryMax   = "retry_max"
	KeyTimeout    = "timeout"
	KeyUserAgent  = "user_agent"
)

// ClientFactory builds the Canvas client used by a command.
type ClientFactory func() (canvas.Client, error)

//nolint:gochecknoglobals // swapped in tests
var newClient ClientFactory = CreateClient

//nolint:gochecknoglobals // configured once at process start
var processLogger canvas.Logger = logging.NewAdapter(logging.New(logging.Options{}))

// SetDefaults registers the configuration defaults.
func SetDefaults() {
	viper.SetDefault(KeyBaseURL, constants.DefaultBaseURL)
	viper.SetDefault(KeyOutput, constants.FormatJSON)
	viper.SetDefault(KeyCandidates, constants.CandidateBaseURLs)
	viper.SetDefault(KeyRetryMax, constants.DefaultRetryMax)
	viper.SetDefault(KeyTimeout, constants.DefaultHTTPTimeout)
}

// ConfigureLogging replaces the process logger. It is called once, after
// flags are parsed.
func ConfigureLogging(w io.Writer, debug bool) {
	color := false
	if f, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}

	processLogger = logging.NewAdapter(logging.New(logging.Options{
		Output: w,
		Debug:  debug,
		Color:  color,
	}))
}

// Logger returns the process logger.
func Logger() canvas.Logger {
	return processLogger
}

// CreateClient loads the token and builds a client from the effective configuration.
func CreateClient() (canvas.Client, error) {
	token, err := auth.LoadToken(viper.GetString(KeyTokenFile))
	if err != nil {
		return nil, err
	}

	client, err := canvasclient.New(&canvas.Config{
		BaseURL:     viper.GetString(KeyBaseURL),
		AccessToken: token,
		HTTPTimeout: viper.GetDuration(KeyTimeout),
		RetryMax:    viper.GetInt(KeyRetryMax),
		UserAgent:   viper.GetString(KeyUserAgent),
		Debug:       viper.GetBool(KeyDebug),
		Logger:      Logger(),
	})
	if err != nil {
		return nil, err
	}

	Logger().Info("Initialized Canvas API client", map[string]interface{}{"base_url": client.BaseURL()})

	return client, nil
}

// outputFormat resolves the configured format, turning "auto" into table on
// a terminal and JSON otherwise.
func outputFormat(w io.Writer) (string, error) {
	format := strings.ToLower(strings.TrimSpace(viper.GetString(KeyOutput)))

	switch format {
	case "", constants.FormatJSON:
		return constants.FormatJSON, nil
	case constants.FormatYAML, constants.FormatTable:
		return format, nil
	case constants.FormatAuto:
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return constants.FormatTable, nil
		}

		return constants.FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q (use json, yaml, table or auto)", canvas.ErrUnknownOutputFormat, format)
	}
}

// render writes data in the configured format; table draws the table form.
func render(w io.Writer, data interface{}, table func(io.Writer) error) error {
	format, err := outputFormat(w)
	if err != nil {
		return err
	}

	switch format {
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)

		err = encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}

		return encoder.Close()
	case constants.FormatTable:
		return table(w)
	default:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		err = encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}

		return nil
	}
}

// orNA renders an absent value as N/A in tables.
func orNA(value *string) string {
	if value == nil || *value == "" {
		return constants.NotAvailable
	}

	return *value
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n])
}

// maskToken shows a short prefix and the length of a token, never the
// whole secret. Tokens too short to hide a prefix are fully masked.
func maskToken(token string) string {
	length := len([]rune(token))

	prefix := ""
	if length > 2*constants.TokenPreviewLength {
		prefix = truncate(token, constants.TokenPreviewLength)
	}

	return fmt.Sprintf("%s**** (%d characters)", prefix, length)
}

// ReportError prints err for the user. In debug mode every layer of the
// wrapped chain is printed with its type.
func ReportError(w io.Writer, err error, debug bool) {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)

	if !debug {
		return
	}

	Logger().Debug("Command failed", map[string]interface{}{"error": err.Error()})

	printCauses(w, err, 1)

	var respErr *canvas.ResponseError
	if errors.As(err, &respErr) {
		_, _ = fmt.Fprintf(w, "  status: %d\n", respErr.StatusCode)
	}
}

func printCauses(w io.Writer, err error, depth int) {
	if err == nil {
		return
	}

	_, _ = fmt.Fprintf(w, "%s%T: %+v\n", strings.Repeat("  ", depth), err, err)

	switch wrapped := err.(type) { //nolint:errorlint // walking the chain by hand
	case interface{ Unwrap() []error }:
		for _, cause := range wrapped.Unwrap() {
			printCauses(w, cause, depth+1)
		}
	case interface{ Unwrap() error }:
		printCauses(w, wrapped.Unwrap(), depth+1)
	}
}
