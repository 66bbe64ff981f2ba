package store

import (
	"context"
	"time"

	"github.com/erazemk/zaloga/internal/model"
)

// RecordStockChange appends a stock change. The timestamp is stored in UTC
// with microsecond precision.
func (s *Store) RecordStockChange(ctx context.Context, itemID int64, amount int, at time.Time) (*model.StockChange, error) {
	return s.recordStockChange(ctx, s.pool, itemID, amount, at)
}

func (s *Store) recordStockChange(ctx context.Context, q DBTX, itemID int64, amount int, at time.Time) (*model.StockChange, error) {
	change := &model.StockChange{
		ItemID:    itemID,
		Amount:    amount,
		Timestamp: at.UTC().Truncate(time.Microsecond),
	}

	err := q.QueryRowContext(ctx,
		s.rebind(`INSERT INTO stock_changes (item_id, amount, timestamp) VALUES (?, ?, ?) RETURNING id`),
		change.ItemID, change.Amount, change.Timestamp,
	).Scan(&change.ID)
	if err != nil {
		return nil, storageError("recording stock change", err)
	}
	return change, nil
}

// ListStockChanges returns the changes recorded for an item, oldest first.
func (s *Store) ListStockChanges(ctx context.Context, itemID int64) ([]model.StockChange, error) {
	rows, err := s.pool.QueryContext(ctx,
		s.rebind(`SELECT id, item_id, amount, timestamp FROM stock_changes
		 WHERE item_id = ? ORDER BY id`), itemID,
	)
	if err != nil {
		return nil, storageError("listing stock changes", err)
	}
	defer rows.Close()

	changes := []model.StockChange{}
	for rows.Next() {
		var c model.StockChange
		if err := rows.Scan(&c.ID, &c.ItemID, &c.Amount, &c.Timestamp); err != nil {
			return nil, storageError("scanning stock change", err)
		}
		c.Timestamp = c.Timestamp.UTC()
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("listing stock changes", err)
	}
	return changes, nil
}
