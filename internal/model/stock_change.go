package model

import "time"

// StockChange is an append-only record of a delta applied to an item's stock.
// ItemID references an item but does not own it.
type StockChange struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"item_id"`
	Amount    int       `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}
