package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/erazemk/zaloga/internal/model"
)

const itemColumns = `id, name, buy_price, sell_price, units_per_buy, amount_in_stock`

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*model.Item, error) {
	item := &model.Item{}
	err := row.Scan(&item.ID, &item.Name, &item.BuyPrice, &item.SellPrice, &item.UnitsPerBuy, &item.AmountInStock)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// validateItem checks the rules shared by insert and update.
func validateItem(item model.Item) error {
	if strings.TrimSpace(item.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if item.UnitsPerBuy < 1 {
		return &ValidationError{Field: "units_per_buy", Reason: "must be at least 1"}
	}
	return nil
}

// ListItems returns all items ordered by id. An empty store yields an empty slice.
func (s *Store) ListItems(ctx context.Context) ([]model.Item, error) {
	rows, err := s.pool.QueryContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id`)
	if err != nil {
		return nil, storageError("listing items", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, storageError("scanning item", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("listing items", err)
	}
	return items, nil
}

// GetItem returns an item by ID, or ErrNotFound.
func (s *Store) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	return s.getItem(ctx, s.pool, id)
}

func (s *Store) getItem(ctx context.Context, q DBTX, id int64) (*model.Item, error) {
	item, err := scanItem(q.QueryRowContext(ctx,
		s.rebind(`SELECT `+itemColumns+` FROM items WHERE id = ?`), id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, storageError("getting item", err)
	}
	return item, nil
}

// InsertItem persists a new item and returns it with its assigned ID.
// draft.ID is ignored.
func (s *Store) InsertItem(ctx context.Context, draft model.Item) (*model.Item, error) {
	if err := validateItem(draft); err != nil {
		return nil, err
	}

	item, err := scanItem(s.pool.QueryRowContext(ctx,
		s.rebind(`INSERT INTO items (name, buy_price, sell_price, units_per_buy, amount_in_stock)
		 VALUES (?, ?, ?, ?, ?) RETURNING `+itemColumns),
		draft.Name, draft.BuyPrice, draft.SellPrice, draft.UnitsPerBuy, draft.AmountInStock,
	))
	if err != nil {
		return nil, storageError("inserting item", err)
	}
	return item, nil
}

// UpdateItem replaces every mutable field of the item with item.ID and
// returns the row as stored.
func (s *Store) UpdateItem(ctx context.Context, item model.Item) (*model.Item, error) {
	if err := validateItem(item); err != nil {
		return nil, err
	}
	return s.updateItem(ctx, s.pool, item)
}

func (s *Store) updateItem(ctx context.Context, q DBTX, item model.Item) (*model.Item, error) {
	updated, err := scanItem(q.QueryRowContext(ctx,
		s.rebind(`UPDATE items SET name = ?, buy_price = ?, sell_price = ?, units_per_buy = ?, amount_in_stock = ?
		 WHERE id = ? RETURNING `+itemColumns),
		item.Name, item.BuyPrice, item.SellPrice, item.UnitsPerBuy, item.AmountInStock, item.ID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(item.ID)
	}
	if err != nil {
		return nil, storageError("updating item", err)
	}
	return updated, nil
}

// UpdateItemDetails replaces the catalog fields of the item with item.ID
// (name, prices, units per buy) and returns the row as stored. The stored
// stock level is left alone, so concurrent stock adjustments are kept.
func (s *Store) UpdateItemDetails(ctx context.Context, item model.Item) (*model.Item, error) {
	if err := validateItem(item); err != nil {
		return nil, err
	}

	updated, err := scanItem(s.pool.QueryRowContext(ctx,
		s.rebind(`UPDATE items SET name = ?, buy_price = ?, sell_price = ?, units_per_buy = ?
		 WHERE id = ? RETURNING `+itemColumns),
		item.Name, item.BuyPrice, item.SellPrice, item.UnitsPerBuy, item.ID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(item.ID)
	}
	if err != nil {
		return nil, storageError("updating item details", err)
	}
	return updated, nil
}
