// Package cli implements the zaloga command line.
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands. Non-empty flag values
// override the loaded configuration.
type RootOptions struct {
	ConfigPath string
	Driver     string
	DSN        string
	LogFile    string
	Format     string // "text" | "json" | "yaml"
	Verbose    bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the zaloga CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "zaloga",
		Short:         "Inventory ledger",
		Long:          "Track items, their buy and sell prices, and stock on hand.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default: ./config.yaml if present)")
	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", "", "database driver: sqlite or postgres")
	cmd.PersistentFlags().StringVarP(&opts.DSN, "db", "d", "", "SQLite path or Postgres URI")
	cmd.PersistentFlags().StringVarP(&opts.LogFile, "log", "l", "", "also write logs to this file")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewItemsCommand(opts))
	cmd.AddCommand(NewStockCommand(opts))

	return cmd
}
