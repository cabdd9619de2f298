package commands

import (
	"github.com/spf13/cobra"
)

// NewUserCommand creates the user command.
func NewUserCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "user",
		Aliases: []string{"whoami"},
		Short:   "Show the authenticated user",
		Long:    "Display the Canvas user the configured token belongs to",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunAction(cmd.Context(), cmd.OutOrStdout(), ActionOptions{Action: ActionUser})
		},
	}
}
