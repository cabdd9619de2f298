package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/canvas-client/internal/auth"
	"github.com/fivetwenty-io/canvas-client/internal/constants"
	"github.com/fivetwenty-io/canvas-client/internal/http"
	"github.com/fivetwenty-io/canvas-client/pkg/canvas"
)

// Client implements the canvas.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       canvas.Logger

	// Resource clients
	users       canvas.UsersClient
	courses     canvas.CoursesClient
	assignments canvas.AssignmentsClient
}

// createTokenManager picks the token source: an explicit token wins over a token file.
func createTokenManager(config *canvas.Config) auth.TokenManager {
	if config.AccessToken != "" {
		return auth.NewStaticTokenManager(config.AccessToken)
	}

	return auth.NewFileTokenManager(config.TokenFile)
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *canvas.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a new Canvas API client. It performs no network I/O.
func New(config *canvas.Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, canvas.ErrBaseURLRequired
	}

	return NewWithTokenManager(config, createTokenManager(config))
}

// NewWithTokenManager creates a new Canvas API client with a custom token manager.
func NewWithTokenManager(config *canvas.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config.BaseURL == "" {
		return nil, canvas.ErrBaseURLRequired
	}

	httpClient := http.NewClient(config.BaseURL, tokenManager, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      strings.TrimSuffix(config.BaseURL, "/"),
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// BaseURL implements canvas.Client.BaseURL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Users implements canvas.Client.Users.
func (c *Client) Users() canvas.UsersClient {
	return c.users
}

// Courses implements canvas.Client.Courses.
func (c *Client) Courses() canvas.CoursesClient {
	return c.courses
}

// Assignments implements canvas.Client.Assignments.
func (c *Client) Assignments() canvas.AssignmentsClient {
	return c.assignments
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.users = NewUsersClient(c.httpClient)
	c.courses = NewCoursesClient(c.httpClient, c.logger)
	c.assignments = NewAssignmentsClient(c.httpClient)
}

// listAll drains a Canvas list endpoint, following rel="next" links.
func listAll[T any](ctx context.Context, httpClient *http.Client, path string, params *canvas.QueryParams, what string) ([]T, error) {
	query := params.Clone()
	if query.PerPage == 0 {
		query.PerPage = constants.StandardPageSize
	}

	fetch := func(ctx context.Context, pageURL string) (*canvas.Page[T], error) {
		var (
			resp *http.Response
			err  error
		)

		if pageURL == "" {
			resp, err = httpClient.Get(ctx, path, query.ToValues())
		} else {
			resp, err = httpClient.Get(ctx, pageURL, nil)
		}

		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", what, err)
		}

		var resources []T

		err = json.Unmarshal(resp.Body, &resources)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing %s list: %w", canvas.ErrUnexpectedResponse, what, err)
		}

		return &canvas.Page[T]{Resources: resources, NextURL: resp.NextURL()}, nil
	}

	return canvas.FetchAllPages(ctx, fetch)
}

// getOne fetches and decodes a single resource.
func getOne[T any](ctx context.Context, httpClient *http.Client, path string, what string) (*T, error) {
	resp, err := httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", what, err)
	}

	var resource T

	err = json.Unmarshal(resp.Body, &resource)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", canvas.ErrUnexpectedResponse, what, err)
	}

	return &resource, nil
}
