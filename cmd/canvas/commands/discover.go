package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/canvas-client/internal/auth"
	"github.com/fivetwenty-io/canvas-client/internal/constants"
	"github.com/fivetwenty-io/canvas-client/pkg/canvas"
	"github.com/fivetwenty-io/canvas-client/pkg/canvasclient"
)

// ErrNoWorkingBaseURL is returned by discover when every candidate failed.
var ErrNoWorkingBaseURL = fmt.Errorf("%w: none of the candidate URLs accepted the token", canvas.ErrResourceNotFound)

// NewDiscoverCommand creates the discover command.
func NewDiscoverCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "discover [URL...]",
		Short: "Find the Canvas base URL that accepts your token",
		Long: `Probe candidate base URLs in order with the configured token and report
the first one whose current-user lookup succeeds. Candidates come from the
arguments, the "candidates" config key, or the built-in list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			candidates := args
			if len(candidates) == 0 {
				candidates = viper.GetStringSlice(KeyCandidates)
			}

			return runDiscover(cmd, candidates)
		},
	}
}

func runDiscover(cmd *cobra.Command, candidates []string) error {
	_, err := outputFormat(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if len(candidates) == 0 {
		return canvas.ErrNoCandidates
	}

	token, err := auth.LoadToken(viper.GetString(KeyTokenFile))
	if err != nil {
		return err
	}

	progress := cmd.ErrOrStderr()
	_, _ = fmt.Fprintf(progress, "Token loaded: %s\n", maskToken(token))

	result, err := canvasclient.Discover(cmd.Context(), token, candidates,
		canvasclient.WithDiscoveryLogger(Logger()),
		canvasclient.WithDiscoveryUserAgent(viper.GetString(KeyUserAgent)),
		canvasclient.OnProbe(func(url string) {
			_, _ = fmt.Fprintf(progress, "\nTesting: %s\n", url)
		}),
		canvasclient.OnAttempt(func(attempt canvasclient.ProbeAttempt) {
			printAttempt(progress, attempt)
		}),
	)
	if err != nil {
		return err
	}

	err = render(cmd.OutOrStdout(), result, discoveryTable(result))
	if err != nil {
		return err
	}

	if !result.Found() {
		if result.AuthenticationRejected() {
			return fmt.Errorf("%w; at least one Canvas instance rejected it, check your Canvas API token", ErrNoWorkingBaseURL)
		}

		return ErrNoWorkingBaseURL
	}

	return nil
}

func printAttempt(w io.Writer, attempt canvasclient.ProbeAttempt) {
	if attempt.Succeeded() {
		_, _ = fmt.Fprintf(w, "  %s Success! User: %s\n", constants.CheckMarkSymbol, attempt.User.Name)
		_, _ = fmt.Fprintf(w, "  %s User ID: %d\n", constants.CheckMarkSymbol, attempt.User.ID)
		_, _ = fmt.Fprintf(w, "  %s Correct URL: %s\n", constants.CheckMarkSymbol, attempt.URL)

		return
	}

	reason := "failed"

	switch {
	case errors.Is(attempt.Err, canvas.ErrAuthentication):
		reason = "token rejected"
	case errors.Is(attempt.Err, canvas.ErrAuthorization):
		reason = "permission denied"
	}

	_, _ = fmt.Fprintf(w, "  %s Failed (%s): %s\n", constants.CrossMarkSymbol, reason,
		truncate(attempt.Message, constants.ErrorPreviewLength))
}

func discoveryTable(result *canvasclient.DiscoveryResult) func(io.Writer) error {
	return func(w io.Writer) error {
		table := tablewriter.NewWriter(w)
		table.Header("URL", "Result", "User", "Duration")

		for _, attempt := range result.Attempts {
			status := constants.CrossMarkSymbol + " " + truncate(attempt.Message, constants.ErrorPreviewLength)
			user := constants.NotAvailable

			if attempt.Succeeded() {
				status = constants.CheckMarkSymbol + " ok"
				user = attempt.User.Name + " (" + strconv.FormatInt(attempt.User.ID, 10) + ")"
			}

			_ = table.Append(attempt.URL, status, user, attempt.Duration.Round(time.Millisecond).String())
		}

		return renderTable(table)
	}
}
