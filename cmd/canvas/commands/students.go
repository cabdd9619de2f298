package commands

import (
	"github.com/spf13/cobra"
)

// NewStudentsCommand creates the students command.
func NewStudentsCommand() *cobra.Command {
	var opts ActionOptions

	cmd := &cobra.Command{
		Use:   "students",
		Short: "List students of a course",
		Long: `List the students enrolled in a course. The course is given by --course-id,
or by --course-name which is resolved like find-course.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Action = ActionStudents

			return RunAction(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().Int64Var(&opts.CourseID, "course-id", 0, "course ID")
	cmd.Flags().StringVar(&opts.CourseName, "course-name", "", "course name or code to search for")

	return cmd
}
