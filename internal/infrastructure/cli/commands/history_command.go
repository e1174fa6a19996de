package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/foxbrief/internal/app"
)

// NewHistoryCommand lists past report runs.
func NewHistoryCommand(container *app.Container) *cobra.Command {
	var (
		limit  int
		search string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past report runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := container.HistoryStore.Records(limit, search)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
				return nil
			}
			for _, rec := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  workspace=%s thread=%s iocs=%d turns=%d/%d %s\n",
					rec.Timestamp.Format("2006-01-02 15:04:05"),
					rec.WorkspaceSlug,
					rec.ThreadSlug,
					rec.IOCCount,
					rec.TurnsOK,
					rec.TurnsOK+rec.TurnsFailed,
					rec.Status,
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by workspace or thread slug")
	return cmd
}
