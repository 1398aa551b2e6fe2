package cart

import (
	"context"
	"testing"
	"time"

	"bandiwala/internal/pricing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	thaliID = "0b6f9a52-3c1e-4f8a-9a53-6e2f6b1d7c01"
	chaiID  = "7d2c4e18-5a9b-4c3d-8e1f-2a6b9c0d4e02"
)

func TestPostgresRepository_ListItems(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM cart_items`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"menu_item_id", "item_name", "quantity",
			"subcategory_title", "subcategory_quantity", "unit_price", "updated_at",
		}).
			AddRow("item-1", "Veg Thali", 2, "Regular", "1 plate", 30.0, now).
			AddRow("item-2", "Cutting Chai", 1, "Cup", "100 ml", 10.0, now))

	items, err := NewPostgresRepository(mock).ListItems(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, items, 2)

	b, err := pricing.Calculate(LineItems(items))
	require.NoError(t, err)
	assert.Equal(t, 99.75, b.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_UpsertItem(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`quantity = EXCLUDED.quantity`).
		WithArgs("user-1", "item-1", "Veg Thali", 3, "Regular", "1 plate", 30.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = NewPostgresRepository(mock).UpsertItem(context.Background(), "user-1", Item{
		MenuItemID:          "item-1",
		Name:                "Veg Thali",
		Quantity:            3,
		SelectedSubcategory: pricing.Subcategory{Title: "Regular", Quantity: "1 plate", Price: 30},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_AddQuantityIncrementsInSQL(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`quantity = cart_items\.quantity \+ EXCLUDED\.quantity`).
		WithArgs("user-1", "item-1", "Veg Thali", 1, "Regular", "1 plate", 30.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = NewPostgresRepository(mock).AddQuantity(context.Background(), "user-1", Item{
		MenuItemID:          "item-1",
		Name:                "Veg Thali",
		Quantity:            1,
		SelectedSubcategory: pricing.Subcategory{Title: "Regular", Quantity: "1 plate", Price: 30},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_DeleteLinesMatchesSnapshot(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	read := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	items := []Item{
		{MenuItemID: thaliID, Quantity: 2, SelectedSubcategory: pricing.Subcategory{Title: "Regular"}, UpdatedAt: read},
		{MenuItemID: chaiID, Quantity: 1, SelectedSubcategory: pricing.Subcategory{Title: "Cup"}, UpdatedAt: read},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`AND updated_at = \$5`).
		WithArgs("user-1", thaliID, "Regular", 2, read).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`AND updated_at = \$5`).
		WithArgs("user-1", chaiID, "Cup", 1, read).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectCommit()

	n, err := NewPostgresRepository(mock).DeleteLines(context.Background(), "user-1", items)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_DeleteItemNonUUID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	removed, err := NewPostgresRepository(mock).DeleteItem(context.Background(), "user-1", "abc", "Regular")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet(), "no query for an id that cannot exist")
}

func TestPostgresRepository_DeleteItem(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM cart_items`).
		WithArgs("user-1", thaliID, "Regular").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	removed, err := NewPostgresRepository(mock).DeleteItem(context.Background(), "user-1", thaliID, "Regular")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_DeleteStale(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cutoff := time.Now().Add(-30 * 24 * time.Hour)
	mock.ExpectExec(`DELETE FROM cart_items WHERE updated_at`).
		WithArgs(cutoff).
		WillReturnResult(pgxmock.NewResult("DELETE", 4))

	n, err := NewPostgresRepository(mock).DeleteStale(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestInMemoryRepository_DeleteStale(t *testing.T) {
	repo := NewInMemoryRepository()
	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return old }
	_ = repo.UpsertItem(context.Background(), "user-1", Item{MenuItemID: "a", Quantity: 1})

	repo.now = time.Now
	_ = repo.UpsertItem(context.Background(), "user-2", Item{MenuItemID: "b", Quantity: 1})

	n, err := repo.DeleteStale(context.Background(), old.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	left, _ := repo.ListItems(context.Background(), "user-2")
	assert.Len(t, left, 1)
}
