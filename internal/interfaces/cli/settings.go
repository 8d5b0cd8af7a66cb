package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewSettingsCommand creates the command group for operator settings
func NewSettingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage the persisted operator settings",
	}

	cmd.AddCommand(newAllowDestructiveCommand())
	cmd.AddCommand(newBindingRetentionCommand())

	return cmd
}

func newAllowDestructiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "allow-destructive <true|false>",
		Short: "Allow or forbid reconciliation runs to close accounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var allow bool
			switch args[0] {
			case "true":
				allow = true
			case "false":
				allow = false
			default:
				return fmt.Errorf("expected true or false, got %q", args[0])
			}

			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			if err := rt.settings.SetAllowDestructiveSync(cmd.Context(), allow); err != nil {
				return err
			}
			rt.logger.Info("Updated destructive-sync setting", zap.Bool("allowed", allow))
			return nil
		},
	}
}

func newBindingRetentionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "binding-retention <retain|delete>",
		Short: "Choose what happens to external bindings when an account closes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			if err := rt.settings.SetBindingRetention(cmd.Context(), args[0]); err != nil {
				return err
			}
			rt.logger.Info("Updated binding retention policy", zap.String("policy", args[0]))
			return nil
		},
	}
}
