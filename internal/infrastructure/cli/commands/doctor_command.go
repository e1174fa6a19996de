package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/foxbrief/internal/app"
	"github.com/doeshing/foxbrief/internal/domain"
)

// NewDoctorCommand runs environment diagnostics.
func NewDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, credentials and AnythingLLM reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			reportOut, err := container.DoctorService.Run(cmd.Context())
			if err != nil {
				return err
			}
			for _, check := range reportOut.Checks {
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s\n", statusTag(check.Status), check.Name, check.Details)
			}
			if !reportOut.Healthy() {
				return fmt.Errorf("%d check(s) failed", countFailed(reportOut))
			}
			return nil
		},
	}
}

func statusTag(status domain.HealthStatus) string {
	switch status {
	case domain.HealthOK:
		return "ok"
	case domain.HealthWarn:
		return "warn"
	default:
		return "fail"
	}
}

func countFailed(report domain.HealthReport) int {
	n := 0
	for _, check := range report.Checks {
		if check.Status == domain.HealthError {
			n++
		}
	}
	return n
}
