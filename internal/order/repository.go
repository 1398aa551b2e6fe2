package order

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("order not found")
	ErrStatusConflict = errors.New("order status changed concurrently")
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]*Order, error)

	// UpdateStatus is a compare-and-set on the current status.
	UpdateStatus(ctx context.Context, id, from, to string) error
}
