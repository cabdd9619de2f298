package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/canvas-client/internal/constants"
	"github.com/fivetwenty-io/canvas-client/internal/http"
	"github.com/fivetwenty-io/canvas-client/pkg/canvas"
)

// CoursesClient implements canvas.CoursesClient.
type CoursesClient struct {
	httpClient *http.Client
	logger     canvas.Logger
}

// NewCoursesClient creates a new courses client. logger may be nil.
func NewCoursesClient(httpClient *http.Client, logger canvas.Logger) *CoursesClient {
	return &CoursesClient{
		httpClient: httpClient,
		logger:     logger,
	}
}

// List implements canvas.CoursesClient.List.
func (c *CoursesClient) List(ctx context.Context, params *canvas.QueryParams) ([]canvas.Course, error) {
	return listAll[canvas.Course](ctx, c.httpClient, constants.APIPrefix+"/courses", params, "courses")
}

// Get implements canvas.CoursesClient.Get.
func (c *CoursesClient) Get(ctx context.Context, courseID int64) (*canvas.Course, error) {
	return getOne[canvas.Course](ctx, c.httpClient, coursePath(courseID), "course")
}

// Find implements canvas.CoursesClient.Find.
func (c *CoursesClient) Find(ctx context.Context, query string) (*canvas.Course, error) {
	courses, err := c.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	course := canvas.FindCourse(courses, query)

	if c.logger != nil {
		if course != nil {
			c.logger.Info("Found course", map[string]interface{}{
				"name": canvas.StringValue(course.Name),
				"id":   course.ID,
			})
		} else {
			c.logger.Warn("Course not found", map[string]interface{}{"query": query})
		}
	}

	return course, nil
}

// ListStudents implements canvas.CoursesClient.ListStudents.
func (c *CoursesClient) ListStudents(ctx context.Context, courseID int64, params *canvas.QueryParams) ([]canvas.Student, error) {
	query := params.Clone()
	if len(query.EnrollmentTypes) == 0 {
		query.WithEnrollmentType(canvas.EnrollmentTypeStudent)
	}

	path := coursePath(courseID) + "/users"

	students, err := listAll[canvas.Student](ctx, c.httpClient, path, query, "students")
	if err != nil {
		return nil, fmt.Errorf("course %d: %w", courseID, err)
	}

	return students, nil
}

func coursePath(courseID int64) string {
	return constants.APIPrefix + "/courses/" + strconv.FormatInt(courseID, 10)
}
