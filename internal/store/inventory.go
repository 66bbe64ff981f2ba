package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/erazemk/zaloga/internal/model"
)

// AdjustStock adds delta to an item's stock in a single relative UPDATE and
// records the change, both in one transaction. Concurrent calls never lose
// an update. No lower bound is enforced.
func (s *Store) AdjustStock(ctx context.Context, id int64, delta int, at time.Time) (*model.Item, error) {
	var item *model.Item
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		item, err = scanItem(tx.QueryRowContext(ctx,
			s.rebind(`UPDATE items SET amount_in_stock = amount_in_stock + ?
			 WHERE id = ? RETURNING `+itemColumns),
			delta, id,
		))
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(id)
		}
		if err != nil {
			return storageError("adjusting stock", err)
		}

		_, err = s.recordStockChange(ctx, tx, id, delta, at)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}
