package commands

import (
	"github.com/spf13/cobra"
)

// NewAssignmentsCommand creates the assignments command.
func NewAssignmentsCommand() *cobra.Command {
	var opts ActionOptions

	cmd := &cobra.Command{
		Use:   "assignments",
		Short: "List assignments of a course",
		Long:  "List the assignments of a course with due dates and points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Action = ActionAssignments

			return RunAction(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().Int64Var(&opts.CourseID, "course-id", 0, "course ID (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "show at most this many assignments (0 for all)")

	return cmd
}
