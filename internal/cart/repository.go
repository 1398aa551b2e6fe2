package cart

import (
	"context"
	"time"
)

type Repository interface {
	ListItems(ctx context.Context, userID string) ([]Item, error)

	// UpsertItem writes the line with an absolute quantity.
	UpsertItem(ctx context.Context, userID string, item Item) error

	// AddQuantity inserts the line or adds item.Quantity to the stored one
	// in a single write.
	AddQuantity(ctx context.Context, userID string, item Item) error

	// DeleteItem reports whether a line was removed.
	DeleteItem(ctx context.Context, userID, menuItemID, subcategory string) (bool, error)

	Clear(ctx context.Context, userID string) error

	// DeleteLines removes exactly the given lines. A line whose quantity or
	// updated_at changed since it was read is kept. Returns rows removed.
	DeleteLines(ctx context.Context, userID string, items []Item) (int64, error)

	// DeleteStale drops lines untouched since before.
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}
