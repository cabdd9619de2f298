package client_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/canvas-client/pkg/canvas"
)

func TestAssignmentsClient_List(t *testing.T) {
	t.Parallel()

	t.Run("decodes due dates and points", func(t *testing.T) {
		t.Parallel()

		pages := [][]interface{}{
			{
				map[string]interface{}{
					"id":               100,
					"name":             "Homework 1",
					"due_at":           "2026-09-15T03:59:59Z",
					"points_possible":  10.5,
					"submission_types": []string{"online_upload", "online_text_entry"},
				},
				map[string]interface{}{"id": 101, "name": "Participation", "due_at": nil},
			},
		}

		client := newTestClient(t, pagedHandler(t, "/api/v1/courses/5/assignments", pages, nil))

		assignments, err := client.Assignments().List(context.Background(), 5, nil)
		require.NoError(t, err)
		require.Len(t, assignments, 2)

		homework := assignments[0]
		require.NotNil(t, homework.DueAt)
		assert.True(t, homework.DueAt.Equal(time.Date(2026, 9, 15, 3, 59, 59, 0, time.UTC)))
		require.NotNil(t, homework.PointsPossible)
		assert.InDelta(t, 10.5, *homework.PointsPossible, 0.001)
		assert.Equal(t, []string{"online_upload", "online_text_entry"}, homework.SubmissionTypes)

		participation := assignments[1]
		assert.Nil(t, participation.DueAt)
		assert.Nil(t, participation.PointsPossible)
		assert.Nil(t, participation.SubmissionTypes)
	})

	t.Run("unknown course", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, errorHandler(http.StatusNotFound, "The specified resource does not exist."))

		_, err := client.Assignments().List(context.Background(), 999, nil)
		require.ErrorIs(t, err, canvas.ErrResourceNotFound)
	})
}
