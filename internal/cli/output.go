package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/erazemk/zaloga/internal/model"
)

type itemView struct {
	ID            int64  `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	BuyPrice      int64  `json:"buy_price" yaml:"buy_price"`
	SellPrice     int64  `json:"sell_price" yaml:"sell_price"`
	UnitsPerBuy   int    `json:"units_per_buy" yaml:"units_per_buy"`
	AmountInStock int    `json:"amount_in_stock" yaml:"amount_in_stock"`
	Profit        int64  `json:"profit" yaml:"profit"`
}

func newItemView(i model.Item) itemView {
	return itemView{
		ID:            i.ID,
		Name:          i.Name,
		BuyPrice:      i.BuyPrice.MinorUnits(),
		SellPrice:     i.SellPrice.MinorUnits(),
		UnitsPerBuy:   i.UnitsPerBuy,
		AmountInStock: i.AmountInStock,
		Profit:        i.Profit().MinorUnits(),
	}
}

type changeView struct {
	ID        int64     `json:"id" yaml:"id"`
	ItemID    int64     `json:"item_id" yaml:"item_id"`
	Amount    int       `json:"amount" yaml:"amount"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// printer renders command results in the selected format. Prices are minor
// units in json and yaml and formatted amounts in text.
type printer struct {
	w        io.Writer
	format   string
	currency string
}

func (p *printer) structured(v any) error {
	switch p.format {
	case "json":
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(p.w)
		defer enc.Close()
		return enc.Encode(v)
	}
	return fmt.Errorf("unsupported format %q", p.format)
}

func (p *printer) items(items []model.Item) error {
	if p.format != "text" {
		views := make([]itemView, 0, len(items))
		for _, i := range items {
			views = append(views, newItemView(i))
		}
		return p.structured(views)
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBUY\tSELL\tUNITS\tSTOCK\tPROFIT")
	for _, i := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%s\n",
			i.ID, i.Name,
			i.BuyPrice.Format(p.currency), i.SellPrice.Format(p.currency),
			i.UnitsPerBuy, i.AmountInStock,
			i.Profit().Format(p.currency))
	}
	return tw.Flush()
}

func (p *printer) item(i model.Item) error {
	if p.format != "text" {
		return p.structured(newItemView(i))
	}
	return p.items([]model.Item{i})
}

func (p *printer) changes(changes []model.StockChange) error {
	if p.format != "text" {
		views := make([]changeView, 0, len(changes))
		for _, c := range changes {
			views = append(views, changeView(c))
		}
		return p.structured(views)
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tAMOUNT\tTIMESTAMP")
	for _, c := range changes {
		fmt.Fprintf(tw, "%d\t%+d\t%s\n", c.ID, c.Amount, c.Timestamp.Format(time.RFC3339))
	}
	return tw.Flush()
}
