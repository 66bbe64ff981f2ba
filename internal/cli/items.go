package cli

import (
	"github.com/spf13/cobra"

	"github.com/erazemk/zaloga/internal/model"
	"github.com/erazemk/zaloga/internal/money"
)

// itemFlags holds the editable item fields as given on the command line.
type itemFlags struct {
	name  string
	buy   string
	sell  string
	units int
	stock int
}

func (f *itemFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "item name")
	cmd.Flags().StringVar(&f.buy, "buy", "0", "price paid per purchase lot, e.g. 40.00")
	cmd.Flags().StringVar(&f.sell, "sell", "0", "price charged per unit, e.g. 1.00")
	cmd.Flags().IntVar(&f.units, "units", 1, "sellable units per purchase lot")
	cmd.Flags().IntVar(&f.stock, "stock", 0, "units in stock")
}

// apply copies the flags that were set onto item.
func (f *itemFlags) apply(cmd *cobra.Command, item *model.Item) error {
	changed := cmd.Flags().Changed
	if changed("name") {
		item.Name = f.name
	}
	if changed("buy") {
		m, err := money.Parse(f.buy)
		if err != nil {
			return err
		}
		item.BuyPrice = m
	}
	if changed("sell") {
		m, err := money.Parse(f.sell)
		if err != nil {
			return err
		}
		item.SellPrice = m
	}
	if changed("units") {
		item.UnitsPerBuy = f.units
	}
	if changed("stock") {
		item.AmountInStock = f.stock
	}
	return nil
}

// NewItemsCommand creates the items command group.
func NewItemsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "List, show, add and edit items",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			items, err := a.store.ListItems(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer(cmd, opts).items(items)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one item",
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

			item, err := a.store.GetItem(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.printer(cmd, opts).item(*item)
		},
	})

	add := &itemFlags{}
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := model.Item{UnitsPerBuy: 1}
			if err := add.apply(cmd, &draft); err != nil {
				return err
			}
			a, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			item, err := a.store.InsertItem(cmd.Context(), draft)
			if err != nil {
				return err
			}
			return a.printer(cmd, opts).item(*item)
		},
	}
	add.register(addCmd)
	cmd.AddCommand(addCmd)

	update := &itemFlags{}
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change an item's fields",
		Long: `Change an item's fields. Only the flags given are changed.

The stock level is written only when --stock is given; otherwise concurrent
stock inc/dec commands are preserved.`,
		Args: cobra.ExactArgs(1),
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

			item, err := a.store.GetItem(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := update.apply(cmd, item); err != nil {
				return err
			}
			save := a.store.UpdateItemDetails
			if cmd.Flags().Changed("stock") {
				save = a.store.UpdateItem
			}
			updated, err := save(cmd.Context(), *item)
			if err != nil {
				return err
			}
			return a.printer(cmd, opts).item(*updated)
		},
	}
	update.register(updateCmd)
	cmd.AddCommand(updateCmd)

	return cmd
}

func (a *app) printer(cmd *cobra.Command, opts *RootOptions) *printer {
	return &printer{w: cmd.OutOrStdout(), format: opts.Format, currency: a.cfg.Currency}
}
