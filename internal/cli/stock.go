package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/erazemk/zaloga/internal/model"
)

// NewStockCommand creates the stock command group.
func NewStockCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Change stock on hand and show its history",
	}

	mutate := func(use, short string, apply func(ctx context.Context, a *app, id int64) (*model.Item, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				a, err := opts.open(cmd.Context())
				if err != nil {
					return err
				}
				defer a.Close()

				item, err := apply(cmd.Context(), a, id)
				if err != nil {
					return err
				}
				return a.printer(cmd, opts).item(*item)
			},
		}
	}

	cmd.AddCommand(mutate("inc", "Add one unit to stock", func(ctx context.Context, a *app, id int64) (*model.Item, error) {
		return a.mutator.Increment(ctx, id)
	}))
	cmd.AddCommand(mutate("dec", "Remove one unit from stock", func(ctx context.Context, a *app, id int64) (*model.Item, error) {
		return a.mutator.Decrement(ctx, id)
	}))

	cmd.AddCommand(&cobra.Command{
		Use:   "history <id>",
		Short: "List recorded stock changes for an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			changes, err := a.store.ListStockChanges(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.printer(cmd, opts).changes(changes)
		},
	})

	return cmd
}
