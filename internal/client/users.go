package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/canvas-client/internal/constants"
	"github.com/fivetwenty-io/canvas-client/internal/http"
	"github.com/fivetwenty-io/canvas-client/pkg/canvas"
)

// UsersClient implements canvas.UsersClient.
type UsersClient struct {
	httpClient *http.Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client) *UsersClient {
	return &UsersClient{
		httpClient: httpClient,
	}
}

// Current implements canvas.UsersClient.Current.
func (c *UsersClient) Current(ctx context.Context) (*canvas.User, error) {
	user, err := getOne[canvas.User](ctx, c.httpClient, constants.APIPrefix+"/users/self", "current user")
	if err != nil {
		return nil, err
	}

	// A non-Canvas host can answer 200 with unrelated JSON.
	if user.ID == 0 {
		return nil, fmt.Errorf("%w: current user has no id", canvas.ErrUnexpectedResponse)
	}

	return user, nil
}
