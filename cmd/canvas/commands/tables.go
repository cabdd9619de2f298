package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/fivetwenty-io/canvas-client/internal/constants"
	"github.com/fivetwenty-io/canvas-client/pkg/canvas"
)

func renderTable(table *tablewriter.Table) error {
	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func userTable(user *canvas.User) func(io.Writer) error {
	return func(w io.Writer) error {
		table := tablewriter.NewWriter(w)
		table.Header("Property", "Value")
		_ = table.Append("ID", strconv.FormatInt(user.ID, 10))
		_ = table.Append("Name", user.Name)
		_ = table.Append("Sortable Name", orNA(user.SortableName))
		_ = table.Append("Email", orNA(user.Email))
		_ = table.Append("Login ID", orNA(user.LoginID))

		return renderTable(table)
	}
}

func courseTable(courses []canvas.Course) func(io.Writer) error {
	return func(w io.Writer) error {
		if len(courses) == 0 {
			_, _ = io.WriteString(w, "No courses found\n")

			return nil
		}

		table := tablewriter.NewWriter(w)
		table.Header("ID", "Name", "Code", "State")

		for _, course := range courses {
			_ = table.Append(
				strconv.FormatInt(course.ID, 10),
				orNA(course.Name),
				orNA(course.CourseCode),
				orNA(course.WorkflowState),
			)
		}

		return renderTable(table)
	}
}

func studentTable(students []canvas.Student) func(io.Writer) error {
	return func(w io.Writer) error {
		if len(students) == 0 {
			_, _ = io.WriteString(w, "No students found\n")

			return nil
		}

		table := tablewriter.NewWriter(w)
		table.Header("ID", "Name", "Sortable Name", "Email", "Login ID")

		for _, student := range students {
			_ = table.Append(
				strconv.FormatInt(student.ID, 10),
				student.Name,
				orNA(student.SortableName),
				orNA(student.Email),
				orNA(student.LoginID),
			)
		}

		return renderTable(table)
	}
}

func assignmentTable(assignments []canvas.Assignment) func(io.Writer) error {
	return func(w io.Writer) error {
		if len(assignments) == 0 {
			_, _ = io.WriteString(w, "No assignments found\n")

			return nil
		}

		table := tablewriter.NewWriter(w)
		table.Header("ID", "Name", "Due", "Points", "Submission Types")

		for _, assignment := range assignments {
			_ = table.Append(
				strconv.FormatInt(assignment.ID, 10),
				assignment.Name,
				formatDue(assignment),
				formatPoints(assignment.PointsPossible),
				formatSubmissionTypes(assignment.SubmissionTypes),
			)
		}

		return renderTable(table)
	}
}

// formatDue renders the due date with a relative hint, e.g.
// "2026-09-15 03:59 (3 weeks from now)".
func formatDue(assignment canvas.Assignment) string {
	if assignment.DueAt == nil {
		return constants.NotAvailable
	}

	return fmt.Sprintf("%s (%s)", assignment.DueAt.Local().Format("2006-01-02 15:04"), humanize.Time(*assignment.DueAt))
}

func formatPoints(points *float64) string {
	if points == nil {
		return constants.NotAvailable
	}

	return humanize.Ftoa(*points)
}

func formatSubmissionTypes(types []string) string {
	if len(types) == 0 {
		return constants.NotAvailable
	}

	return strings.Join(types, ", ")
}
