// Package cli wires the reconciliation subsystem into its command-line
// interface. Every command builds a full runtime from configuration, runs
// one operation and exits; the scheduler driving periodic runs lives
// outside this binary.
package cli

import (
	"github.com/spf13/cobra"
)

const rootLong = "syncd keeps the bar ledger's user accounts in step with the " +
	"association's directory and membership registry: profiles are refreshed, " +
	"new directory accounts are provisioned, and accounts no external source " +
	"vouches for anymore are closed."

// NewRootCommand creates the root command for the syncd CLI
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "syncd",
		Short:         "Reconciles bar ledger accounts against external identity sources",
		Long:          rootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewMigrateCommand())
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewFetchCommand())
	cmd.AddCommand(NewImportTransfersCommand())
	cmd.AddCommand(NewSettingsCommand())

	return cmd
}
