package menu

import (
	"context"
	"errors"
)

var (
	ErrVendorNotFound = errors.New("vendor not found")
	ErrItemNotFound   = errors.New("menu item not found")
)

// Repository defines all database operations for vendors and menus
type Repository interface {
	CreateVendor(ctx context.Context, v *Vendor) error
	ListVendors(ctx context.Context) ([]Vendor, error)
	GetVendor(ctx context.Context, id string) (*Vendor, error)

	CreateItem(ctx context.Context, item *MenuItem) error
	ListItemsByVendor(ctx context.Context, vendorID string) ([]MenuItem, error)
	GetItem(ctx context.Context, id string) (*MenuItem, error)
	SetItemImage(ctx context.Context, id string, url string) error
}
