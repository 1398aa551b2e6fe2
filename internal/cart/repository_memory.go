package cart

import (
	"context"
	"sync"
	"time"
)

type lineKey struct {
	menuItemID  string
	subcategory string
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[string][]Item
	now   func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		carts: make(map[string][]Item),
		now:   time.Now,
	}
}

func (r *InMemoryRepository) ListItems(_ context.Context, userID string) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Item, len(r.carts[userID]))
	copy(out, r.carts[userID])
	return out, nil
}

func (r *InMemoryRepository) UpsertItem(_ context.Context, userID string, item Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.UpdatedAt = r.now()
	lines := r.carts[userID]
	key := lineKey{item.MenuItemID, item.SelectedSubcategory.Title}

	for i, l := range lines {
		if (lineKey{l.MenuItemID, l.SelectedSubcategory.Title}) == key {
			lines[i] = item
			return nil
		}
	}

	r.carts[userID] = append(lines, item)
	return nil
}

func (r *InMemoryRepository) AddQuantity(_ context.Context, userID string, item Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.UpdatedAt = r.now()
	lines := r.carts[userID]
	key := lineKey{item.MenuItemID, item.SelectedSubcategory.Title}

	for i, l := range lines {
		if (lineKey{l.MenuItemID, l.SelectedSubcategory.Title}) == key {
			item.Quantity += l.Quantity
			lines[i] = item
			return nil
		}
	}

	r.carts[userID] = append(lines, item)
	return nil
}

func (r *InMemoryRepository) DeleteItem(_ context.Context, userID, menuItemID, subcategory string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := r.carts[userID]
	for i, l := range lines {
		if l.MenuItemID == menuItemID && l.SelectedSubcategory.Title == subcategory {
			r.carts[userID] = append(lines[:i], lines[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryRepository) Clear(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, userID)
	return nil
}

func (r *InMemoryRepository) DeleteLines(_ context.Context, userID string, items []Item) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	kept := make([]Item, 0, len(r.carts[userID]))
	for _, l := range r.carts[userID] {
		if containsLine(items, l) {
			removed++
			continue
		}
		kept = append(kept, l)
	}

	if len(kept) == 0 {
		delete(r.carts, userID)
	} else {
		r.carts[userID] = kept
	}
	return removed, nil
}

func containsLine(items []Item, l Item) bool {
	for _, it := range items {
		if it.MenuItemID == l.MenuItemID &&
			it.SelectedSubcategory.Title == l.SelectedSubcategory.Title &&
			it.Quantity == l.Quantity &&
			it.UpdatedAt.Equal(l.UpdatedAt) {
			return true
		}
	}
	return false
}

func (r *InMemoryRepository) DeleteStale(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for user, lines := range r.carts {
		kept := lines[:0]
		for _, l := range lines {
			if l.UpdatedAt.Before(before) {
				removed++
				continue
			}
			kept = append(kept, l)
		}
		if len(kept) == 0 {
			delete(r.carts, user)
		} else {
			r.carts[user] = kept
		}
	}
	return removed, nil
}
