package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/foxbrief/internal/app"
	"github.com/doeshing/foxbrief/internal/application/report"
	"github.com/doeshing/foxbrief/internal/domain"
)

// NewFetchCommand fetches recent IOCs and prints the normalized JSON envelope.
func NewFetchCommand(container *app.Container) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch recent ThreatFox IOCs and print them as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := container.FeedClient.FetchRecent(cmd.Context(), days)
			if err != nil {
				return err
			}
			if !result.OK() {
				return fmt.Errorf("%w: query_status=%q %s",
					domain.ErrUpstreamStatus, result.QueryStatus, result.ErrorDetail())
			}
			out, err := report.BuildJSON(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", domain.DefaultDays, "Lookback window in days, 1-7")
	return cmd
}
