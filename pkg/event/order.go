package event

import (
	"fmt"
	"time"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrdersTopic is the per-restaurant subject carrying order lifecycle events.
func OrdersTopic(restaurantID string) string {
	return fmt.Sprintf("restaurant.%s.orders", restaurantID)
}

// RestaurantSubjects matches every subject of one restaurant.
func RestaurantSubjects(restaurantID string) string {
	return fmt.Sprintf("restaurant.%s.>", restaurantID)
}

// OrderEvent represents an order lifecycle event published to NATS. It
// carries the full order so consumers can update their snapshots without a
// round trip to the record store.
type OrderEvent struct {
	EventType      string      `json:"event_type"`
	OccurredAt     time.Time   `json:"occurred_at"`
	OrderID        string      `json:"order_id"`
	TableID        string      `json:"table_id"`
	TableNumber    int         `json:"table_number,omitempty"`
	Status         string      `json:"status"`
	PreviousStatus string      `json:"previous_status,omitempty"`
	Note           string      `json:"note,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	Items          []OrderLine `json:"items,omitempty"`
}

type OrderLine struct {
	DishID    string  `json:"dish_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}
