package cli

import (
	"github.com/spf13/cobra"
)

// NewFetchCommand creates the command that provisions new external accounts
func NewFetchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Discover and provision new accounts from the external sources",
		Long: "Asks every configured provider for accounts that exist " +
			"externally but not yet in the ledger, and creates them locally " +
			"with their bindings.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			rt.manager.Fetch(cmd.Context())
			rt.logger.Info("Account discovery finished")
			return nil
		},
	}
}
