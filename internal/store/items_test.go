package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/zaloga/internal/db"
	"github.com/erazemk/zaloga/internal/model"
	"github.com/erazemk/zaloga/internal/money"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(db.NewTestDB(t), db.DialectSQLite)
}

func coffee() model.Item {
	return model.Item{
		Name:          "Coffee beans",
		BuyPrice:      money.FromMinorUnits(4000),
		SellPrice:     money.FromMinorUnits(100),
		UnitsPerBuy:   90,
		AmountInStock: 1000,
	}
}

func TestInsertAndGetItem(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	draft := coffee()
	item, err := s.InsertItem(ctx, draft)
	require.NoError(t, err)
	assert.NotZero(t, item.ID)

	got, err := s.GetItem(ctx, item.ID)
	require.NoError(t, err)

	draft.ID = item.ID
	assert.Equal(t, draft, *got)
	assert.Equal(t, int64(5000), got.Profit().MinorUnits())
}

func TestInsertIgnoresDraftID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	draft := coffee()
	draft.ID = 42
	item, err := s.InsertItem(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.ID)

	second, err := s.InsertItem(ctx, coffee())
	require.NoError(t, err)
	assert.NotEqual(t, item.ID, second.ID)
}

func TestGetItemNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetItem(context.Background(), 999)
	assert.True(t, errors.Is(err, ErrNotFound), "expected ErrNotFound, got %v", err)
}

func TestListItems(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	items, err := s.ListItems(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	for _, name := range []string{"Tea", "Coffee", "Milk"} {
		draft := coffee()
		draft.Name = name
		_, err := s.InsertItem(ctx, draft)
		require.NoError(t, err)
	}

	items, err = s.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Tea", items[0].Name)
	assert.Equal(t, "Milk", items[2].Name)
}

func TestInsertItemValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		edit  func(*model.Item)
		field string
	}{
		{"empty name", func(i *model.Item) { i.Name = "" }, "name"},
		{"blank name", func(i *model.Item) { i.Name = "   " }, "name"},
		{"zero units", func(i *model.Item) { i.UnitsPerBuy = 0 }, "units_per_buy"},
		{"negative units", func(i *model.Item) { i.UnitsPerBuy = -3 }, "units_per_buy"},
	}

	for _, tt := range tests {
		draft := coffee()
		tt.edit(&draft)

		_, err := s.InsertItem(ctx, draft)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected *ValidationError, got %v", tt.name, err)
			continue
		}
		assert.Equal(t, tt.field, verr.Field, tt.name)
	}

	items, err := s.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items, "invalid drafts must not be written")
}

func TestValidationPrecedesIO(t *testing.T) {
	database := db.NewTestDB(t)
	s := New(database, db.DialectSQLite)
	database.Close()

	draft := coffee()
	draft.Name = ""
	_, err := s.InsertItem(context.Background(), draft)
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)

	_, err = s.InsertItem(context.Background(), coffee())
	var serr *StorageError
	assert.True(t, errors.As(err, &serr), "expected *StorageError, got %v", err)
}

func TestUpdateItem(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item, err := s.InsertItem(ctx, coffee())
	require.NoError(t, err)

	item.Name = "Decaf beans"
	item.SellPrice = money.FromMinorUnits(120)
	item.AmountInStock = -4

	updated, err := s.UpdateItem(ctx, *item)
	require.NoError(t, err)
	assert.Equal(t, *item, *updated)

	got, err := s.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, *item, *got)
}

func TestUpdateItemNotFound(t *testing.T) {
	s := newTestStore(t)

	draft := coffee()
	draft.ID = 999
	_, err := s.UpdateItem(context.Background(), draft)
	assert.True(t, errors.Is(err, ErrNotFound), "expected ErrNotFound, got %v", err)
}

func TestUpdateItemDetailsKeepsStock(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item, err := s.InsertItem(ctx, coffee())
	require.NoError(t, err)

	// The caller's copy goes stale while stock moves underneath it.
	_, err = s.AdjustStock(ctx, item.ID, 5, testTime)
	require.NoError(t, err)

	item.SellPrice = money.FromMinorUnits(120)
	item.AmountInStock = 0
	updated, err := s.UpdateItemDetails(ctx, *item)
	require.NoError(t, err)
	assert.Equal(t, int64(120), updated.SellPrice.MinorUnits())
	assert.Equal(t, 1005, updated.AmountInStock)

	got, err := s.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, *updated, *got)
}

func TestUpdateItemDetailsErrors(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	draft := coffee()
	draft.ID = 999
	_, err := s.UpdateItemDetails(ctx, draft)
	assert.True(t, errors.Is(err, ErrNotFound), "expected ErrNotFound, got %v", err)

	draft.Name = " "
	_, err = s.UpdateItemDetails(ctx, draft)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	assert.Equal(t, "name", verr.Field)
}

func TestUpdateItemValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item, err := s.InsertItem(ctx, coffee())
	require.NoError(t, err)

	item.UnitsPerBuy = 0
	_, err = s.UpdateItem(ctx, *item)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)

	got, err := s.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, got.UnitsPerBuy)
}

func TestStorePostgres(t *testing.T) {
	s := New(db.NewPostgresTestDB(t), db.DialectPostgres)
	ctx := context.Background()

	item, err := s.InsertItem(ctx, coffee())
	require.NoError(t, err)

	got, err := s.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, *item, *got)

	adjusted, err := s.AdjustStock(ctx, item.ID, -1, testTime)
	require.NoError(t, err)
	assert.Equal(t, 999, adjusted.AmountInStock)

	changes, err := s.ListStockChanges(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.True(t, testTime.Equal(changes[0].Timestamp))
}
