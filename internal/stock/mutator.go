// Package stock applies quantity changes to a single item's stock.
package stock

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/erazemk/zaloga/internal/model"
)

// ItemStore is the part of the inventory store a Mutator needs.
// *store.Store implements it.
type ItemStore interface {
	GetItem(ctx context.Context, id int64) (*model.Item, error)
	UpdateItem(ctx context.Context, item model.Item) (*model.Item, error)
	RecordStockChange(ctx context.Context, itemID int64, amount int, at time.Time) (*model.StockChange, error)
	AdjustStock(ctx context.Context, id int64, delta int, at time.Time) (*model.Item, error)
}

// Strategy selects how a delta reaches the database.
type Strategy string

const (
	// ReadModifyWrite reads the item, changes it in memory and writes the
	// whole row back. Two concurrent calls on one item can both read the same
	// starting value, and one of the updates is then lost.
	ReadModifyWrite Strategy = "read-modify-write"

	// Atomic applies the delta with a relative UPDATE inside a transaction.
	// Concurrent calls never lose an update.
	Atomic Strategy = "atomic"
)

// ParseStrategy validates a strategy name from configuration.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(s)); st {
	case ReadModifyWrite, Atomic:
		return st, nil
	}
	return "", fmt.Errorf("unknown stock strategy %q", s)
}

// Mutator changes stock on hand and records every change.
type Mutator struct {
	items    ItemStore
	strategy Strategy

	// Now stamps recorded stock changes. Defaults to time.Now.
	Now func() time.Time
}

// New returns a Mutator. An empty strategy means Atomic.
func New(items ItemStore, strategy Strategy) *Mutator {
	if strategy == "" {
		strategy = Atomic
	}
	return &Mutator{items: items, strategy: strategy, Now: time.Now}
}

// Strategy reports the strategy in use.
func (m *Mutator) Strategy() Strategy {
	return m.strategy
}

// Increment adds one unit to the item's stock.
func (m *Mutator) Increment(ctx context.Context, id int64) (*model.Item, error) {
	return m.ApplyDelta(ctx, id, 1)
}

// Decrement removes one unit from the item's stock. Stock may go negative.
func (m *Mutator) Decrement(ctx context.Context, id int64) (*model.Item, error) {
	return m.ApplyDelta(ctx, id, -1)
}

// ApplyDelta adds delta to the item's stock and returns the item as stored.
// Store errors, including store.ErrNotFound, are returned unchanged.
//
// With Atomic the stock update and its StockChange commit together. With
// ReadModifyWrite they are separate writes: an error from recording the
// change is returned after the new stock level has already been persisted.
func (m *Mutator) ApplyDelta(ctx context.Context, id int64, delta int) (*model.Item, error) {
	at := m.Now()

	if m.strategy == Atomic {
		item, err := m.items.AdjustStock(ctx, id, delta, at)
		if err != nil {
			return nil, err
		}
		slog.Debug("stock adjusted", "item", id, "delta", delta, "stock", item.AmountInStock)
		return item, nil
	}

	item, err := m.items.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	item.AmountInStock += delta

	updated, err := m.items.UpdateItem(ctx, *item)
	if err != nil {
		return nil, err
	}

	if _, err := m.items.RecordStockChange(ctx, id, delta, at); err != nil {
		return nil, err
	}

	slog.Debug("stock adjusted", "item", id, "delta", delta, "stock", updated.AmountInStock, "strategy", m.strategy)
	return updated, nil
}
