package menu

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu      sync.RWMutex
	vendors map[string]Vendor
	items   map[string]MenuItem
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		vendors: make(map[string]Vendor),
		items:   make(map[string]MenuItem),
	}
}

func (r *InMemoryRepository) CreateVendor(_ context.Context, v *Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	v.CreatedAt = time.Now()
	r.vendors[v.ID] = *v
	return nil
}

func (r *InMemoryRepository) ListVendors(_ context.Context) ([]Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Vendor, 0, len(r.vendors))
	for _, v := range r.vendors {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *InMemoryRepository) GetVendor(_ context.Context, id string) (*Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vendors[id]
	if !ok {
		return nil, ErrVendorNotFound
	}
	return &v, nil
}

func (r *InMemoryRepository) CreateItem(_ context.Context, item *MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.CreatedAt = time.Now()
	r.items[item.ID] = *item
	return nil
}

func (r *InMemoryRepository) ListItemsByVendor(_ context.Context, vendorID string) ([]MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []MenuItem{}
	for _, item := range r.items {
		if item.VendorID == vendorID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *InMemoryRepository) GetItem(_ context.Context, id string) (*MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &item, nil
}

func (r *InMemoryRepository) SetItemImage(_ context.Context, id string, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return ErrItemNotFound
	}
	item.ImageURL = url
	r.items[id] = item
	return nil
}
