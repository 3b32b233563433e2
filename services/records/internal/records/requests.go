package records

import "github.com/google/uuid"

// TableOccupancyRequest accepts the canonical occupancy name. Occupied is the
// legacy boolean form and is only read when Occupancy is empty.
type TableOccupancyRequest struct {
	Occupancy         string `json:"occupancy"`
	Occupied          *bool  `json:"occupied,omitempty"`
	ExpectedOccupancy string `json:"expected_occupancy,omitempty"`
}

type OrderCreateRequest struct {
	ID      uuid.UUID          `json:"id"`
	TableID uuid.UUID          `json:"table_id"`
	Items   []OrderItemRequest `json:"items"`
	Note    string             `json:"note,omitempty"`
}

type OrderItemRequest struct {
	DishID    uuid.UUID `json:"dish_id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
}

type OrderStatusRequest struct {
	Status         string `json:"status"`
	ExpectedStatus string `json:"expected_status,omitempty"`
}

type InvoiceCreateRequest struct {
	OrderID       uuid.UUID `json:"order_id"`
	Tax           float64   `json:"tax"`
	Discount      float64   `json:"discount"`
	PaymentMethod string    `json:"payment_method"`
	Reference     string    `json:"reference"`
	Client        *Client   `json:"client,omitempty"`
}

type InvoiceUpdateRequest struct {
	Status string `json:"status"`
}
