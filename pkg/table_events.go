package pkg

import (
	"fmt"
	"time"
)

const (
	// EventTableOccupancyChanged identifies a table occupancy change payload.
	EventTableOccupancyChanged = "table.occupancy_changed"
)

// TablesTopic delivers authoritative occupancy changes for the tables of one
// restaurant.
func TablesTopic(restaurantID string) string {
	return fmt.Sprintf("restaurant.%s.tables", restaurantID)
}

// TableOccupancyEvent captures the minimal information consumers need to
// reason about a table's availability.
type TableOccupancyEvent struct {
	EventType         string    `json:"event_type"`
	TableID           string    `json:"table_id"`
	TableNumber       int       `json:"table_number"`
	Occupancy         string    `json:"occupancy"`
	PreviousOccupancy string    `json:"previous_occupancy,omitempty"`
	Reason            string    `json:"reason,omitempty"`
	Source            string    `json:"source,omitempty"`
	OccurredAt        time.Time `json:"occurred_at"`
}
