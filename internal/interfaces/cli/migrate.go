package cli

import (
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the command that applies the database schema
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the subsystem's database tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			if err := rt.db.Migrate(); err != nil {
				return err
			}
			rt.logger.Info("Database schema is up to date")
			return nil
		},
	}
}
