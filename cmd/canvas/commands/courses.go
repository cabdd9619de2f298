package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/canvas-client/pkg/canvas"
)

// NewCoursesCommand creates the courses command group. Without a subcommand
// it lists every course of the current user.
func NewCoursesCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "courses",
		Aliases: []string{"course"},
		Short:   "List courses",
		Long:    "List the courses the authenticated user is enrolled in",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunAction(cmd.Context(), cmd.OutOrStdout(), ActionOptions{Action: ActionCourses, Limit: limit})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many courses (0 for all)")

	cmd.AddCommand(newCoursesGetCommand())

	return cmd
}

func newCoursesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get COURSE_ID",
		Short: "Get course details",
		Long:  "Display a single course by its numeric ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseCourseID(args[0])
			if err != nil {
				return err
			}

			_, err = outputFormat(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			return runGetCourse(cmd.Context(), cmd.OutOrStdout(), client, courseID)
		},
	}
}

// NewFindCourseCommand creates the find-course command.
func NewFindCourseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "find-course NAME",
		Short: "Find a course by name or code",
		Long: `Find the first course whose name or course code contains NAME,
ignoring case. Exits with an error when no course matches.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunAction(cmd.Context(), cmd.OutOrStdout(), ActionOptions{Action: ActionFindCourse, CourseName: args[0]})
		},
	}
}

func parseCourseID(raw string) (int64, error) {
	courseID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || courseID <= 0 {
		return 0, fmt.Errorf("%w: course ID must be a positive integer, got %q", canvas.ErrInvalidArgument, raw)
	}

	return courseID, nil
}
