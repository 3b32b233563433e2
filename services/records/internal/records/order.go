package records

import (
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/appetiteclub/frontdesk/pkg/enums/orderstatus"
	"github.com/appetiteclub/frontdesk/pkg/money"
)

type Order struct {
	ID          uuid.UUID  `json:"id" bson:"_id"`
	TableID     uuid.UUID  `json:"table_id" bson:"table_id"`
	TableNumber int        `json:"table_number" bson:"table_number"`
	Items       []LineItem `json:"items" bson:"items"`
	Status      string     `json:"status" bson:"status"`
	Note        string     `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	CreatedBy   string     `json:"created_by" bson:"created_by"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
	UpdatedBy   string     `json:"updated_by" bson:"updated_by"`
}

// LineItem is a dish snapshot taken when the order was created, so later
// menu edits do not change what is billed.
type LineItem struct {
	DishID    uuid.UUID `json:"dish_id" bson:"dish_id"`
	Name      string    `json:"name" bson:"name"`
	UnitPrice float64   `json:"unit_price" bson:"unit_price"`
	Quantity  int       `json:"quantity" bson:"quantity"`
}

func (o *Order) GetID() uuid.UUID {
	return o.ID
}

func (o *Order) ResourceType() string {
	return "order"
}

func (o *Order) SetID(id uuid.UUID) {
	o.ID = id
}

func NewOrder() *Order {
	return &Order{
		ID:     apt.GenerateNewID(),
		Status: orderstatus.Statuses.Received.Name,
		Items:  []LineItem{},
	}
}

func (o *Order) EnsureID() {
	if o.ID == uuid.Nil {
		o.ID = apt.GenerateNewID()
	}
}

func (o *Order) BeforeCreate() {
	o.EnsureID()
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
}

func (o *Order) BeforeUpdate() {
	o.UpdatedAt = time.Now()
}

// BaseCost is Σ unitPrice × quantity, rounded to cents.
func (o *Order) BaseCost() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(money.Line(item.UnitPrice, item.Quantity))
	}
	return money.Round(total)
}

// MoveTo applies a status change if the edge exists in the workflow graph.
func (o *Order) MoveTo(status string) error {
	if !orderstatus.CanTransition(o.Status, status) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, o.Status, status)
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

func (o *Order) IsBillable() bool {
	return orderstatus.Billable(o.Status)
}
