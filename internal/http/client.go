package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tomnomnom/linkheader"

	"github.com/fivetwenty-io/canvas-client/internal/auth"
	"github.com/fivetwenty-io/canvas-client/internal/constants"
	"github.com/fivetwenty-io/canvas-client/pkg/canvas"
)

const defaultUserAgent = "canvas-client/1.0"

// Client is a small HTTP client for the Canvas REST API.
type Client struct {
	baseURL      *url.URL
	rawBaseURL   string
	tokenManager auth.TokenManager
	httpClient   *retryablehttp.Client
	logger       canvas.Logger
	debug        bool
	userAgent    string
	interceptors *canvas.InterceptorChain
}

// Request describes a single API call. Path is either relative to the base
// URL or an absolute URL on the same host (as found in Link headers).
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// NextURL returns the rel="next" target of the Link header, or "".
func (r *Response) NextURL() string {
	if r == nil {
		return ""
	}

	links := linkheader.ParseMultiple(r.Headers.Values("Link")).FilterByRel("next")
	if len(links) == 0 {
		return ""
	}

	return links[0].URL
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger canvas.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the per-request timeout of the underlying transport.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithRetryConfig enables retries of 5xx, 429 and connection errors.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithInterceptors runs the chain around every request.
func WithInterceptors(chain *canvas.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a client for baseURL. tokenManager may be nil for
// unauthenticated requests. A base URL that does not parse is only reported
// when a request is made.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	trimmed := strings.TrimSuffix(baseURL, "/")
	parsed, _ := url.Parse(trimmed)

	client := &Client{
		baseURL:      parsed,
		rawBaseURL:   trimmed,
		tokenManager: tokenManager,
		httpClient:   retryClient,
		userAgent:    defaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	// retryablehttp logs its own lines only when it may retry.
	if client.logger != nil && client.debug && retryClient.RetryMax > 0 {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

// BaseURL returns the base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.rawBaseURL
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Do performs the request. On a non-2xx status both the response and a
// *canvas.ResponseError are returned.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL, err := c.resolveURL(req)
	if err != nil {
		return nil, err
	}

	intercepted := &canvas.Request{
		Method:  req.Method,
		Path:    req.Path,
		Headers: make(http.Header),
	}

	for key, value := range req.Headers {
		intercepted.Headers.Set(key, value)
	}

	if c.interceptors != nil {
		err = c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
		if err != nil {
			return nil, err
		}
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	for key, values := range intercepted.Headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	if c.tokenManager != nil {
		token, tokenErr := c.tokenManager.GetToken(ctx)
		if tokenErr != nil {
			return nil, fmt.Errorf("getting token: %w", tokenErr)
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	c.logDebug("HTTP Request", map[string]interface{}{
		"method": req.Method,
		"url":    fullURL,
	})

	resp, err := c.execute(httpReq)

	if c.interceptors != nil {
		interceptedResp := &canvas.Response{Error: err}
		if resp != nil {
			interceptedResp.StatusCode = resp.StatusCode
			interceptedResp.Headers = resp.Headers
		}

		interceptorErr := c.interceptors.ExecuteResponseInterceptors(ctx, intercepted, interceptedResp)
		if err == nil && interceptorErr != nil {
			err = interceptorErr
		}
	}

	return resp, err
}

func (c *Client) execute(httpReq *retryablehttp.Request) (*Response, error) {
	// With retries exhausted on a 5xx the passthrough handler returns both the
	// last response and the retry policy's error; the response wins.
	httpResp, err := c.httpClient.Do(httpReq)
	if httpResp == nil {
		if err == nil {
			err = canvas.ErrUnexpectedResponse
		}

		return nil, fmt.Errorf("%w: %s %s: %w", canvas.ErrNetwork, httpReq.Method, httpReq.URL.Redacted(), err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %w", canvas.ErrNetwork, err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	c.logDebug("HTTP Response", map[string]interface{}{
		"status": httpResp.StatusCode,
		"bytes":  len(body),
	})

	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		return resp, canvas.ParseResponseError(httpResp.StatusCode, httpResp.Header, body)
	}

	return resp, nil
}

// resolveURL joins relative paths onto the base URL and refuses absolute URLs
// pointing at another host, since the bearer token would leak there.
func (c *Client) resolveURL(req *Request) (string, error) {
	if c.baseURL == nil || c.baseURL.Host == "" {
		return "", fmt.Errorf("%w: %q", canvas.ErrInvalidBaseURL, c.rawBaseURL)
	}

	var target *url.URL

	if strings.HasPrefix(req.Path, "http://") || strings.HasPrefix(req.Path, "https://") {
		parsed, err := url.Parse(req.Path)
		if err != nil {
			return "", fmt.Errorf("%w: parsing %q: %w", canvas.ErrUnexpectedResponse, req.Path, err)
		}

		if !strings.EqualFold(parsed.Host, c.baseURL.Host) {
			return "", fmt.Errorf("%w: link to foreign host %s", canvas.ErrUnexpectedResponse, parsed.Host)
		}

		target = parsed
	} else {
		parsed, err := url.Parse(c.rawBaseURL + req.Path)
		if err != nil {
			return "", fmt.Errorf("%w: %w", canvas.ErrInvalidBaseURL, err)
		}

		target = parsed
	}

	if len(req.Query) > 0 {
		query := target.Query()
		for key, values := range req.Query {
			for _, value := range values {
				query.Add(key, value)
			}
		}

		target.RawQuery = query.Encode()
	}

	return target.String(), nil
}

func (c *Client) logDebug(msg string, fields map[string]interface{}) {
	if c.logger != nil && c.debug {
		c.logger.Debug(msg, fields)
	}
}

// leveledLogger adapts canvas.Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger canvas.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, toFields(keysAndValues))
}

func toFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return fields
}
