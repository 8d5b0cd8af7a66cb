package cli

import (
	"fmt"
	"os"

	financeapp "github.com/gewis/sudosos-syncd/internal/application/finance"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewImportTransfersCommand creates the command that loads a legacy
// transfer export into the ledger
func NewImportTransfersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import-transfers <file>",
		Short: "Load a CSV transfer export into the ledger",
		Long: "Reads a CSV export of ledger transfers and books its rows. " +
			"Rows carrying an id column are upserted, so a partially failed " +
			"import can be re-run safely.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open export: %w", err)
			}
			defer func() { _ = file.Close() }()

			service := financeapp.NewTransferImportService(rt.transfers, rt.logger)
			result, err := service.ImportCSV(cmd.Context(), file)
			if err != nil {
				return err
			}

			for _, rowErr := range result.Errors {
				rt.logger.Warn("Skipped malformed export row", zap.String("detail", rowErr.Error()))
			}
			rt.logger.Info("Transfer import finished",
				zap.String("file", args[0]),
				zap.Int("total_rows", result.TotalRows),
				zap.Int("imported_rows", result.ImportedRows),
				zap.Int("skipped_rows", result.SkippedRows),
				zap.Int("error_rows", result.ErrorRows))
			return nil
		},
	}
}
