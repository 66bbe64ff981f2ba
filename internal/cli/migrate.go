package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erazemk/zaloga/internal/db"
)

// NewMigrateCommand creates the migrate command. Every command migrates on
// startup; this one only reports the resulting version.
func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Bring the database schema up to date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			v, err := db.CurrentVersion(cmd.Context(), a.pool)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", v)
			return nil
		},
	}
}
