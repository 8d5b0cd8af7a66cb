package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRunCommand creates the command for a full reconciliation run
func NewRunCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reconcile all candidate accounts against the external sources",
		Long: "Walks every active account a provider declared interest in, " +
			"refreshes it from its external source, and closes accounts no " +
			"source vouches for anymore. With --dry-run nothing is persisted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			ctx := cmd.Context()
			run := rt.manager.Run
			if dryRun {
				run = rt.manager.RunDry
			}
			result, err := run(ctx)
			if err != nil {
				return err
			}

			rt.logger.Info("Reconciliation run finished",
				zap.Bool("dry_run", dryRun),
				zap.Int("total", result.Total()),
				zap.Int("passed", len(result.Passed)),
				zap.Int("failed", len(result.Failed)),
				zap.Int("skipped", len(result.Skipped)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would change without persisting anything")

	return cmd
}
