package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/canvas-client/internal/http"
	"github.com/fivetwenty-io/canvas-client/pkg/canvas"
)

// AssignmentsClient implements canvas.AssignmentsClient.
type AssignmentsClient struct {
	httpClient *http.Client
}

// NewAssignmentsClient creates a new assignments client.
func NewAssignmentsClient(httpClient *http.Client) *AssignmentsClient {
	return &AssignmentsClient{
		httpClient: httpClient,
	}
}

// List implements canvas.AssignmentsClient.List.
func (c *AssignmentsClient) List(ctx context.Context, courseID int64, params *canvas.QueryParams) ([]canvas.Assignment, error) {
	assignments, err := listAll[canvas.Assignment](ctx, c.httpClient, coursePath(courseID)+"/assignments", params, "assignments")
	if err != nil {
		return nil, fmt.Errorf("course %d: %w", courseID, err)
	}

	return assignments, nil
}
