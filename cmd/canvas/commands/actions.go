package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/canvas-client/internal/constants"
	"github.com/fivetwenty-io/canvas-client/pkg/canvas"
)

// Values accepted by --action.
const (
	ActionUser        = "user"
	ActionCourses     = "courses"
	ActionFindCourse  = "find-course"
	ActionStudents    = "students"
	ActionAssignments = "assignments"
	ActionDemo        = "demo"
)

// Actions lists the --action values in help order.
func Actions() []string {
	return []string{ActionUser, ActionCourses, ActionFindCourse, ActionStudents, ActionAssignments, ActionDemo}
}

// ActionOptions carries the --action selector and its arguments.
type ActionOptions struct {
	Action     string
	CourseID   int64
	CourseName string
	// Limit caps list output; 0 shows everything.
	Limit int
}

// AddActionFlags registers --action, --course-id and --course-name on cmd.
func AddActionFlags(cmd *cobra.Command, opts *ActionOptions) {
	cmd.Flags().StringVar(&opts.Action, "action", "",
		"action to run ("+strings.Join(Actions(), ", ")+")")
	cmd.Flags().Int64Var(&opts.CourseID, "course-id", 0, "course ID (students, assignments)")
	cmd.Flags().StringVar(&opts.CourseName, "course-name", "", "course name or code to search for (find-course, students)")
}

// Validate checks the action and its required arguments without touching
// the network.
func (o ActionOptions) Validate() error {
	switch o.Action {
	case ActionUser, ActionCourses, ActionDemo:
		return nil
	case ActionFindCourse:
		if strings.TrimSpace(o.CourseName) == "" {
			return canvas.ErrCourseNameRequired
		}
	case ActionStudents:
		if o.CourseID <= 0 && strings.TrimSpace(o.CourseName) == "" {
			return canvas.ErrCourseRefRequired
		}
	case ActionAssignments:
		if o.CourseID <= 0 {
			return canvas.ErrCourseIDRequired
		}
	default:
		return fmt.Errorf("%w: %q (use %s)", canvas.ErrUnknownAction, o.Action, strings.Join(Actions(), ", "))
	}

	return nil
}

// RunAction validates opts, builds a client and runs the selected action,
// writing results to out.
func RunAction(ctx context.Context, out io.Writer, opts ActionOptions) error {
	err := opts.Validate()
	if err != nil {
		return err
	}

	_, err = outputFormat(out)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	switch opts.Action {
	case ActionUser:
		return runUser(ctx, out, client)
	case ActionCourses:
		return runCourses(ctx, out, client, opts.Limit)
	case ActionFindCourse:
		return runFindCourse(ctx, out, client, opts.CourseName)
	case ActionStudents:
		return runStudents(ctx, out, client, opts.CourseID, opts.CourseName)
	case ActionAssignments:
		return runAssignments(ctx, out, client, opts.CourseID, opts.Limit)
	default:
		return runDemo(ctx, out, client)
	}
}

func runUser(ctx context.Context, out io.Writer, client canvas.Client) error {
	user, err := client.Users().Current(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	Logger().Info("Retrieved user info", map[string]interface{}{"name": user.Name})

	return render(out, user, userTable(user))
}

func runCourses(ctx context.Context, out io.Writer, client canvas.Client, limit int) error {
	courses, err := client.Courses().List(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to list courses: %w", err)
	}

	Logger().Info("Retrieved courses", map[string]interface{}{"count": len(courses)})

	courses = firstN(courses, limit)

	return render(out, courses, courseTable(courses))
}

func runGetCourse(ctx context.Context, out io.Writer, client canvas.Client, courseID int64) error {
	course, err := client.Courses().Get(ctx, courseID)
	if err != nil {
		return fmt.Errorf("failed to get course %d: %w", courseID, err)
	}

	return render(out, course, courseTable([]canvas.Course{*course}))
}

// findCourse resolves name to a course, failing with ErrCourseNotFound.
func findCourse(ctx context.Context, client canvas.Client, name string) (*canvas.Course, error) {
	course, err := client.Courses().Find(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search courses: %w", err)
	}

	if course == nil {
		return nil, fmt.Errorf("%w %q", canvas.ErrCourseNotFound, name)
	}

	return course, nil
}

func runFindCourse(ctx context.Context, out io.Writer, client canvas.Client, name string) error {
	course, err := findCourse(ctx, client, name)
	if err != nil {
		return err
	}

	return render(out, course, courseTable([]canvas.Course{*course}))
}

func runStudents(ctx context.Context, out io.Writer, client canvas.Client, courseID int64, courseName string) error {
	if courseID <= 0 {
		course, err := findCourse(ctx, client, courseName)
		if err != nil {
			return err
		}

		courseID = course.ID
	}

	students, err := client.Courses().ListStudents(ctx, courseID, nil)
	if err != nil {
		return fmt.Errorf("failed to list students: %w", err)
	}

	Logger().Info("Retrieved students", map[string]interface{}{"count": len(students), "course_id": courseID})

	return render(out, students, studentTable(students))
}

func runAssignments(ctx context.Context, out io.Writer, client canvas.Client, courseID int64, limit int) error {
	assignments, err := client.Assignments().List(ctx, courseID, nil)
	if err != nil {
		return fmt.Errorf("failed to list assignments: %w", err)
	}

	Logger().Info("Retrieved assignments", map[string]interface{}{"count": len(assignments), "course_id": courseID})

	assignments = firstN(assignments, limit)

	return render(out, assignments, assignmentTable(assignments))
}

// runDemo walks user, courses, course search, students and assignments. A
// missing demo course is logged and ends the demo without failing.
func runDemo(ctx context.Context, out io.Writer, client canvas.Client) error {
	Logger().Info("Starting Canvas API demo", nil)

	Logger().Info("=== User Information ===", nil)

	err := runUser(ctx, out, client)
	if err != nil {
		return err
	}

	Logger().Info("=== All Courses ===", nil)

	err = runCourses(ctx, out, client, constants.MaxDemoItems)
	if err != nil {
		return err
	}

	Logger().Info("=== Finding Course ===", map[string]interface{}{"query": constants.DemoCourseQuery})

	course, err := client.Courses().Find(ctx, constants.DemoCourseQuery)
	if err != nil {
		return fmt.Errorf("failed to search courses: %w", err)
	}

	if course == nil {
		Logger().Error("Demo course not found", map[string]interface{}{"query": constants.DemoCourseQuery})

		return nil
	}

	err = render(out, course, courseTable([]canvas.Course{*course}))
	if err != nil {
		return err
	}

	Logger().Info("=== Course Students ===", nil)

	err = runStudents(ctx, out, client, course.ID, "")
	if err != nil {
		return err
	}

	Logger().Info("=== Course Assignments ===", nil)

	return runAssignments(ctx, out, client, course.ID, constants.MaxDemoItems)
}

func firstN[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}

	return items
}
