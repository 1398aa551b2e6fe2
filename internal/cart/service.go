package cart

import (
	"context"
	"errors"
	"fmt"

	"bandiwala/internal/menu"
	"bandiwala/internal/pricing"
)

var (
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrLineNotFound       = errors.New("item not in cart")
	ErrUnknownSubcategory = errors.New("subcategory not offered for item")
	ErrItemUnavailable    = errors.New("menu item is not available")
)

// MenuReader resolves the authoritative price of a dish.
type MenuReader interface {
	GetMenuItem(ctx context.Context, id string) (*menu.MenuItem, error)
}

type Service struct {
	repo       Repository
	menu       MenuReader
	calculator *pricing.Calculator
}

func NewService(repo Repository, menu MenuReader, calculator *pricing.Calculator) *Service {
	return &Service{repo: repo, menu: menu, calculator: calculator}
}

// --------------------------------------------------
// Read cart + breakdown
// --------------------------------------------------
func (s *Service) GetCart(ctx context.Context, userID string) (*View, error) {
	items, err := s.repo.ListItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}

	breakdown, err := s.calculator.Calculate(LineItems(items))
	if err != nil {
		return nil, err
	}

	return &View{
		UserID:    userID,
		Items:     items,
		Breakdown: breakdown,
	}, nil
}

// --------------------------------------------------
// Add item (merges with an existing line)
// --------------------------------------------------
func (s *Service) AddItem(
	ctx context.Context,
	userID string,
	menuItemID string,
	subcategory string,
	quantity int,
) (*View, error) {

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.menu.GetMenuItem(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	if !item.IsAvailable {
		return nil, ErrItemUnavailable
	}

	sub, ok := item.Subcategory(subcategory)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSubcategory, subcategory)
	}

	if err := s.repo.AddQuantity(ctx, userID, Item{
		MenuItemID:          item.ID,
		Name:                item.Name,
		Quantity:            quantity,
		SelectedSubcategory: sub,
	}); err != nil {
		return nil, fmt.Errorf("save cart item: %w", err)
	}

	return s.GetCart(ctx, userID)
}

// --------------------------------------------------
// Update quantity (0 removes the line)
// --------------------------------------------------
func (s *Service) UpdateQuantity(
	ctx context.Context,
	userID string,
	menuItemID string,
	subcategory string,
	quantity int,
) (*View, error) {

	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if quantity == 0 {
		return s.RemoveItem(ctx, userID, menuItemID, subcategory)
	}

	line, err := s.findLine(ctx, userID, menuItemID, subcategory)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, ErrLineNotFound
	}

	line.Quantity = quantity
	if err := s.repo.UpsertItem(ctx, userID, *line); err != nil {
		return nil, fmt.Errorf("save cart item: %w", err)
	}

	return s.GetCart(ctx, userID)
}

func (s *Service) RemoveItem(
	ctx context.Context,
	userID string,
	menuItemID string,
	subcategory string,
) (*View, error) {

	removed, err := s.repo.DeleteItem(ctx, userID, menuItemID, subcategory)
	if err != nil {
		return nil, fmt.Errorf("delete cart item: %w", err)
	}
	if !removed {
		return nil, ErrLineNotFound
	}

	return s.GetCart(ctx, userID)
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.repo.Clear(ctx, userID)
}

// RemoveLines deletes the lines a checkout consumed and leaves anything
// added or changed after they were read.
func (s *Service) RemoveLines(ctx context.Context, userID string, items []Item) error {
	if len(items) == 0 {
		return nil
	}
	if _, err := s.repo.DeleteLines(ctx, userID, items); err != nil {
		return fmt.Errorf("delete checked-out lines: %w", err)
	}
	return nil
}

func (s *Service) findLine(ctx context.Context, userID, menuItemID, subcategory string) (*Item, error) {
	items, err := s.repo.ListItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	for _, it := range items {
		if it.MenuItemID == menuItemID && it.SelectedSubcategory.Title == subcategory {
			return &it, nil
		}
	}
	return nil, nil
}
