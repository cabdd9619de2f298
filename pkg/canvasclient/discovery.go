package canvasclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fivetwenty-io/canvas-client/internal/constants"
	"github.com/fivetwenty-io/canvas-client/pkg/canvas"
)

// ClientFactory builds a client for a single probe.
type ClientFactory func(config *canvas.Config) (canvas.Client, error)

// ProbeAttempt records the outcome of probing one candidate base URL.
type ProbeAttempt struct {
	URL      string        `json:"url"                yaml:"url"`
	User     *canvas.User  `json:"user"               yaml:"user"`
	Err      error         `json:"-"                  yaml:"-"`
	Duration time.Duration `json:"duration"           yaml:"duration"`
	Message  string        `json:"error,omitempty"    yaml:"error,omitempty"`
}

// Succeeded reports whether the candidate authenticated the token.
func (a ProbeAttempt) Succeeded() bool {
	return a.Err == nil && a.User != nil
}

// AuthenticationRejected reports whether the candidate is a Canvas instance
// that refused the token, as opposed to a wrong or unreachable URL.
func (a ProbeAttempt) AuthenticationRejected() bool {
	return errors.Is(a.Err, canvas.ErrAuthentication)
}

// DiscoveryResult is the outcome of Discover.
type DiscoveryResult struct {
	// URL is the first candidate that authenticated, empty when none did.
	URL      string         `json:"url"      yaml:"url"`
	User     *canvas.User   `json:"user"     yaml:"user"`
	Attempts []ProbeAttempt `json:"attempts" yaml:"attempts"`
}

// Found reports whether any candidate worked.
func (r *DiscoveryResult) Found() bool {
	return r != nil && r.URL != ""
}

// AuthenticationRejected reports whether at least one candidate answered as a
// Canvas instance but rejected the token.
func (r *DiscoveryResult) AuthenticationRejected() bool {
	if r == nil {
		return false
	}

	for _, attempt := range r.Attempts {
		if attempt.AuthenticationRejected() {
			return true
		}
	}

	return false
}

type discoverOptions struct {
	logger    canvas.Logger
	timeout   time.Duration
	factory   ClientFactory
	userAgent string
	onAttempt func(ProbeAttempt)
	onProbe   func(url string)
}

// DiscoverOption configures Discover.
type DiscoverOption func(*discoverOptions)

// WithDiscoveryLogger sets the logger used for probe requests.
func WithDiscoveryLogger(logger canvas.Logger) DiscoverOption {
	return func(o *discoverOptions) {
		o.logger = logger
	}
}

// WithProbeTimeout bounds each probe.
func WithProbeTimeout(timeout time.Duration) DiscoverOption {
	return func(o *discoverOptions) {
		o.timeout = timeout
	}
}

// WithClientFactory replaces New as the way probe clients are built.
func WithClientFactory(factory ClientFactory) DiscoverOption {
	return func(o *discoverOptions) {
		o.factory = factory
	}
}

// WithDiscoveryUserAgent sets the User-Agent sent by probes.
func WithDiscoveryUserAgent(userAgent string) DiscoverOption {
	return func(o *discoverOptions) {
		o.userAgent = userAgent
	}
}

// OnProbe is called before a candidate is contacted.
func OnProbe(fn func(url string)) DiscoverOption {
	return func(o *discoverOptions) {
		o.onProbe = fn
	}
}

// OnAttempt is called after each candidate has been probed.
func OnAttempt(fn func(ProbeAttempt)) DiscoverOption {
	return func(o *discoverOptions) {
		o.onAttempt = fn
	}
}

// Discover probes candidates in order and returns the first base URL whose
// current-user lookup succeeds with token. Later candidates are not contacted
// once one succeeds. Any failure moves on to the next candidate; the returned
// error is reserved for an empty candidate list and context cancellation.
func Discover(ctx context.Context, token string, candidates []string, opts ...DiscoverOption) (*DiscoveryResult, error) {
	if len(candidates) == 0 {
		return nil, canvas.ErrNoCandidates
	}

	options := &discoverOptions{
		timeout: constants.ProbeHTTPTimeout,
		factory: New,
	}
	for _, opt := range opts {
		opt(options)
	}

	result := &DiscoveryResult{Attempts: make([]ProbeAttempt, 0, len(candidates))}

	for _, candidate := range candidates {
		err := ctx.Err()
		if err != nil {
			return result, fmt.Errorf("discovery interrupted: %w", err)
		}

		if options.onProbe != nil {
			options.onProbe(candidate)
		}

		attempt := probe(ctx, token, candidate, options)
		result.Attempts = append(result.Attempts, attempt)

		if options.onAttempt != nil {
			options.onAttempt(attempt)
		}

		if attempt.Succeeded() {
			result.URL = attempt.URL
			result.User = attempt.User

			return result, nil
		}

		if options.logger != nil {
			options.logger.Debug("Candidate rejected", map[string]interface{}{
				"url":           candidate,
				"error":         attempt.Message,
				"token_refused": attempt.AuthenticationRejected(),
			})
		}
	}

	return result, nil
}

func probe(ctx context.Context, token, candidate string, options *discoverOptions) ProbeAttempt {
	start := time.Now()
	attempt := ProbeAttempt{URL: candidate}

	finish := func(err error) ProbeAttempt {
		attempt.Duration = time.Since(start)
		attempt.Err = err

		if err != nil {
			attempt.Message = err.Error()
		}

		return attempt
	}

	normalized, err := NormalizeBaseURL(candidate)
	if err != nil {
		return finish(err)
	}

	attempt.URL = normalized

	client, err := options.factory(&canvas.Config{
		BaseURL:     normalized,
		AccessToken: token,
		HTTPTimeout: options.timeout,
		UserAgent:   options.userAgent,
		Logger:      options.logger,
	})
	if err != nil {
		return finish(err)
	}

	probeCtx := ctx
	if options.timeout > 0 {
		var cancel context.CancelFunc

		probeCtx, cancel = context.WithTimeout(ctx, options.timeout)
		defer cancel()
	}

	user, err := client.Users().Current(probeCtx)
	if err != nil {
		return finish(err)
	}

	attempt.User = user

	return finish(nil)
}
