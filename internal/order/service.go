package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bandiwala/internal/auth"
	"bandiwala/internal/cart"
	"bandiwala/internal/events"
	"bandiwala/internal/logger"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrMissingAddress    = errors.New("delivery address is required")
	ErrForbidden         = errors.New("order belongs to another user")
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// CartSource is the part of the cart service checkout needs.
type CartSource interface {
	GetCart(ctx context.Context, userID string) (*cart.View, error)
	RemoveLines(ctx context.Context, userID string, items []cart.Item) error
}

type Service struct {
	repo      Repository
	carts     CartSource
	publisher events.Publisher
}

func NewService(repo Repository, carts CartSource, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Service{repo: repo, carts: carts, publisher: publisher}
}

// --------------------------------------------------
// Checkout: snapshot cart → order, then empty the cart
// --------------------------------------------------
func (s *Service) PlaceOrder(ctx context.Context, userID, address string) (*Order, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrMissingAddress
	}

	view, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if view.IsEmpty() {
		return nil, ErrEmptyCart
	}

	o := &Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Items:           view.Items,
		Breakdown:       view.Breakdown,
		Status:          StatusPlaced,
		DeliveryAddress: address,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	log := logger.GetLogger()
	log.Infow("order placed",
		"orderID", o.ID,
		"userID", userID,
		"items", len(o.Items),
		"total", o.Breakdown.Total,
	)

	// Remove only the lines copied into the order. A failed delete must not
	// fail checkout because the order already exists.
	if err := s.carts.RemoveLines(ctx, userID, o.Items); err != nil {
		log.Errorw("remove ordered lines from cart", "userID", userID, "error", err)
	}

	s.publish(ctx, events.OrderPlacedRoutingKey, events.OrderPlaced{
		EventType: "OrderPlaced",
		OrderID:   o.ID,
		UserID:    o.UserID,
		Items:     cart.LineItems(o.Items),
		Breakdown: o.Breakdown,
		Timestamp: time.Now().UTC(),
	})

	return o, nil
}

func (s *Service) ListMyOrders(ctx context.Context, userID string) ([]*Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// GetOrder returns an order to its owner or to an admin.
func (s *Service) GetOrder(ctx context.Context, userID, role, orderID string) (*Order, error) {
	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID && role != auth.RoleAdmin {
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) (*Order, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !IsValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	from := o.Status
	if !CanTransition(from, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, status)
	}

	if err := s.repo.UpdateStatus(ctx, orderID, from, status); err != nil {
		return nil, err
	}
	o.Status = status

	logger.GetLogger().Infow("order status changed", "orderID", orderID, "from", from, "to", status)

	s.publish(ctx, events.OrderStatusChangedRoutingKey, events.OrderStatusChanged{
		EventType: "OrderStatusChanged",
		OrderID:   o.ID,
		UserID:    o.UserID,
		From:      from,
		To:        status,
		Timestamp: time.Now().UTC(),
	})

	return o, nil
}

func (s *Service) publish(ctx context.Context, routingKey string, event any) {
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		logger.GetLogger().Warnw("publish event failed", "routingKey", routingKey, "error", err)
	}
}
