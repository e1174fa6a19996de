package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/foxbrief/internal/app"
	"github.com/doeshing/foxbrief/internal/domain"
	"github.com/doeshing/foxbrief/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// reportOptions carries the report flags. The root command and the report
// subcommand each bind their own copy.
type reportOptions struct {
	days         int
	workspace    string
	model        string
	dryRun       bool
	llmQuestions bool
	timeout      time.Duration
}

func bindReportFlags(cmd *cobra.Command, o *reportOptions) {
	cmd.Flags().IntVarP(&o.days, "days", "d", 0, "Lookback window in days, 1-7 (default from config)")
	cmd.Flags().StringVarP(&o.workspace, "workspace", "w", "", "Target workspace name (default from config)")
	cmd.Flags().StringVarP(&o.model, "model", "m", "", "Chat model override for conversation turns")
	cmd.Flags().BoolVar(&o.dryRun, "dry-run", false, "Build the markdown report and print it without uploading")
	cmd.Flags().BoolVar(&o.llmQuestions, "llm-questions", false, "Enable the LLM-backed question strategies for this run")
	cmd.Flags().DurationVar(&o.timeout, "timeout", 10*time.Minute, "Overall run timeout")
}

// runReport executes the report workflow. Both the root command and the report
// subcommand dispatch here directly; re-executing a registered child command
// through cobra would route back to the root and loop.
func runReport(cmd *cobra.Command, args []string, container *app.Container, o reportOptions) error {
	if o.llmQuestions {
		container.EnableLLMQuestions()
	}

	ctx := cmd.Context()
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	summary, err := container.ReportService.Run(domain.RunRequest{
		Context:       ctx,
		Mission:       strings.Join(args, " "),
		Days:          o.days,
		WorkspaceName: o.workspace,
		ModelOverride: o.model,
		DryRun:        o.dryRun,
	})
	if err != nil {
		return err
	}
	RenderSummary(summary)
	return nil
}

// NewRootCmd builds the dependency container and wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}
	return newRootCmd(container), nil
}

func newRootCmd(container *app.Container) *cobra.Command {
	var (
		rootOpts reportOptions
		debug    bool
	)

	root := &cobra.Command{
		Use:   "foxbrief [mission]",
		Short: "foxbrief - ThreatFox daily IOC brief for AnythingLLM",
		Long: "foxbrief pulls recent IOCs from ThreatFox, uploads a JSON and markdown report\n" +
			"into an AnythingLLM workspace and runs a scripted analyst conversation over it.",
		// Positional args are the mission string, not subcommand names.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args, container, rootOpts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	bindReportFlags(root, &rootOpts)
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if debug {
			container.SetVerbose(true)
		}
	}

	root.AddCommand(newReportCommand(container))
	root.AddCommand(commands.NewFetchCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root
}

func newReportCommand(container *app.Container) *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report [mission]",
		Short: "Run the daily IOC report workflow",
		Long: "Fetches recent ThreatFox IOCs, uploads the report artifacts into the target\n" +
			"workspace and drives the analyst question conversation. An optional mission\n" +
			"string tailors the generated questions.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args, container, opts)
		},
	}
	bindReportFlags(cmd, &opts)
	return cmd
}
