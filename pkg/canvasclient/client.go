package canvasclient

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/canvas-client/internal/client"
	"github.com/fivetwenty-io/canvas-client/pkg/canvas"
)

// New creates a new Canvas API client. Construction never touches the network.
func New(config *canvas.Config) (canvas.Client, error) {
	if config == nil {
		return nil, canvas.ErrConfigRequired
	}

	if strings.TrimSpace(config.BaseURL) == "" {
		return nil, canvas.ErrBaseURLRequired
	}

	baseURL, err := NormalizeBaseURL(config.BaseURL)
	if err != nil {
		return nil, err
	}

	normalized := *config
	normalized.BaseURL = baseURL

	cli, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return cli, nil
}

// NormalizeBaseURL trims whitespace and trailing slashes and adds "https://"
// when no scheme is present. Non-HTTP schemes and URLs without a host are
// rejected with ErrInvalidBaseURL.
func NormalizeBaseURL(raw string) (string, error) {
	baseURL := strings.TrimSpace(raw)
	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", canvas.ErrInvalidBaseURL, raw, err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: %q must use http or https", canvas.ErrInvalidBaseURL, raw)
	}

	if parsed.Host == "" {
		return "", fmt.Errorf("%w: %q has no host", canvas.ErrInvalidBaseURL, raw)
	}

	return strings.TrimRight(baseURL, "/"), nil
}

// NewWithToken creates a new client with a base URL and access token.
func NewWithToken(baseURL, token string) (canvas.Client, error) {
	return New(&canvas.Config{
		BaseURL:     baseURL,
		AccessToken: token,
	})
}

// NewWithTokenFile creates a new client that reads its token from tokenFile
// on every request. An empty tokenFile means the default token location.
func NewWithTokenFile(baseURL, tokenFile string) (canvas.Client, error) {
	return New(&canvas.Config{
		BaseURL:   baseURL,
		TokenFile: tokenFile,
	})
}
