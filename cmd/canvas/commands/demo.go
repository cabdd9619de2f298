package commands

import (
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/canvas-client/internal/constants"
)

// NewDemoCommand creates the demo command.
func NewDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through every lookup",
		Long: `Show the current user, the first courses, the course matching "` + constants.DemoCourseQuery + `",
its students and its first assignments.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunAction(cmd.Context(), cmd.OutOrStdout(), ActionOptions{Action: ActionDemo})
		},
	}
}
