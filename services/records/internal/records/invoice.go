package records

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/pkg/enums/invoicestatus"
)

type Invoice struct {
	ID            uuid.UUID `json:"id" bson:"_id"`
	Number        int64     `json:"number" bson:"number"`
	OrderID       uuid.UUID `json:"order_id" bson:"order_id"`
	TableID       uuid.UUID `json:"table_id" bson:"table_id"`
	BaseCost      float64   `json:"base_cost" bson:"base_cost"`
	Tax           float64   `json:"tax" bson:"tax"`
	Discount      float64   `json:"discount" bson:"discount"`
	Total         float64   `json:"total" bson:"total"`
	PaymentMethod string    `json:"payment_method" bson:"payment_method"`
	Reference     string    `json:"reference,omitempty" bson:"reference,omitempty"`
	Client        *Client   `json:"client,omitempty" bson:"client,omitempty"`
	Status        string    `json:"status" bson:"status"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

// Client identifies the billed party of a formal invoice. Invoices without
// a client are issued to the final consumer.
type Client struct {
	IDDocument string `json:"id_document" bson:"id_document"`
	Name       string `json:"name" bson:"name"`
	Address    string `json:"address,omitempty" bson:"address,omitempty"`
	Phone      string `json:"phone,omitempty" bson:"phone,omitempty"`
}

func (i *Invoice) GetID() uuid.UUID {
	return i.ID
}

func (i *Invoice) ResourceType() string {
	return "invoice"
}

func NewInvoice() *Invoice {
	return &Invoice{
		ID:     apt.GenerateNewID(),
		Status: invoicestatus.Statuses.Paid.Name,
	}
}

func (i *Invoice) BeforeCreate() {
	if i.ID == uuid.Nil {
		i.ID = apt.GenerateNewID()
	}
	i.CreatedAt = time.Now()
	i.UpdatedAt = i.CreatedAt
}

func (i *Invoice) BeforeUpdate() {
	i.UpdatedAt = time.Now()
}
