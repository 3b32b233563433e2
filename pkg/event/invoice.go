package event

import (
	"fmt"
	"time"
)

const (
	EventInvoiceCreated       = "invoice.created"
	EventInvoiceStatusChanged = "invoice.status_changed"
)

func InvoicesTopic(restaurantID string) string {
	return fmt.Sprintf("restaurant.%s.invoices", restaurantID)
}

type InvoiceEvent struct {
	EventType     string    `json:"event_type"`
	OccurredAt    time.Time `json:"occurred_at"`
	InvoiceID     string    `json:"invoice_id"`
	Number        int64     `json:"number"`
	OrderID       string    `json:"order_id"`
	TableID       string    `json:"table_id"`
	Total         float64   `json:"total"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
}
