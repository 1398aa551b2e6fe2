package order

import (
	"time"

	"bandiwala/internal/cart"
	"bandiwala/internal/pricing"
)

const (
	StatusPlaced         = "PLACED"
	StatusConfirmed      = "CONFIRMED"
	StatusPreparing      = "PREPARING"
	StatusOutForDelivery = "OUT_FOR_DELIVERY"
	StatusDelivered      = "DELIVERED"
	StatusCancelled      = "CANCELLED"
)

// Order is an immutable snapshot of a cart at checkout plus its status.
type Order struct {
	ID              string            `json:"id"`
	UserID          string            `json:"userId"`
	Items           []cart.Item       `json:"items"`
	Breakdown       pricing.Breakdown `json:"breakdown"`
	Status          string            `json:"status"`
	DeliveryAddress string            `json:"deliveryAddress"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}
