package model

import "github.com/erazemk/zaloga/internal/money"

// Item is a catalog entry with prices and stock on hand.
type Item struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	BuyPrice    money.Money `json:"buy_price"`
	SellPrice   money.Money `json:"sell_price"`
	UnitsPerBuy int         `json:"units_per_buy"`

	// AmountInStock may be negative; no lower bound is enforced.
	AmountInStock int `json:"amount_in_stock"`
}

// Profit returns the profit per purchase lot: every unit of a lot sold at
// SellPrice, minus the lot's BuyPrice.
func (i Item) Profit() money.Money {
	return i.SellPrice.Mul(i.UnitsPerBuy).Sub(i.BuyPrice)
}
