package events

import (
	"time"

	"bandiwala/internal/pricing"
)

type OrderPlaced struct {
	EventType string             `json:"eventType"`
	OrderID   string             `json:"orderId"`
	UserID    string             `json:"userId"`
	Items     []pricing.LineItem `json:"items"`
	Breakdown pricing.Breakdown  `json:"breakdown"`
	Timestamp time.Time          `json:"timestamp"`
}

type OrderStatusChanged struct {
	EventType string    `json:"eventType"`
	OrderID   string    `json:"orderId"`
	UserID    string    `json:"userId"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Timestamp time.Time `json:"timestamp"`
}

// PartitionKey keeps each order's events in sequence on one partition.
func (e OrderPlaced) PartitionKey() string { return e.OrderID }

func (e OrderStatusChanged) PartitionKey() string { return e.OrderID }
