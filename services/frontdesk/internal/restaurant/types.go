// Package restaurant holds the records the frontdesk reads from and writes to
// the record store, plus the error and notice vocabulary shared by the
// lifecycle components.
package restaurant

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/appetiteclub/frontdesk/pkg/enums/occupancy"
	"github.com/appetiteclub/frontdesk/pkg/money"
)

type Table struct {
	ID        uuid.UUID `json:"id"`
	Number    int       `json:"number"`
	Capacity  int       `json:"capacity"`
	Occupancy string    `json:"occupancy"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t Table) IsOccupied() bool {
	state := occupancy.ByName(t.Occupancy)
	return state != nil && state.Occupied()
}

type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type Dish struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CategoryID  uuid.UUID `json:"category_id"`
	Price       float64   `json:"price"`
	Available   bool      `json:"available"`
}

type LineItem struct {
	DishID    uuid.UUID `json:"dish_id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
}

type Order struct {
	ID          uuid.UUID  `json:"id"`
	TableID     uuid.UUID  `json:"table_id"`
	TableNumber int        `json:"table_number"`
	Items       []LineItem `json:"items"`
	Status      string     `json:"status"`
	Note        string     `json:"note,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BaseCost is the sum of unit price times quantity over all lines, in cents.
func (o Order) BaseCost() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(money.Line(item.UnitPrice, item.Quantity))
	}
	return money.Round(total)
}

// Clone returns a copy that shares no slices with o.
func (o Order) Clone() Order {
	c := o
	if o.Items != nil {
		c.Items = make([]LineItem, len(o.Items))
		copy(c.Items, o.Items)
	}
	return c
}

// OrderDraft is what the gateway sends to create an order.
type OrderDraft struct {
	ID      uuid.UUID  `json:"id"`
	TableID uuid.UUID  `json:"table_id"`
	Items   []LineItem `json:"items"`
	Note    string     `json:"note,omitempty"`
}

type Client struct {
	IDDocument string `json:"id_document"`
	Name       string `json:"name"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

type Invoice struct {
	ID            uuid.UUID `json:"id"`
	Number        int64     `json:"number"`
	OrderID       uuid.UUID `json:"order_id"`
	TableID       uuid.UUID `json:"table_id"`
	BaseCost      float64   `json:"base_cost"`
	Tax           float64   `json:"tax"`
	Discount      float64   `json:"discount"`
	Total         float64   `json:"total"`
	PaymentMethod string    `json:"payment_method"`
	Reference     string    `json:"reference,omitempty"`
	Client        *Client   `json:"client,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// InvoiceDraft is the settlement request sent to the record store. Amounts
// travel as plain numbers already rounded to cents.
type InvoiceDraft struct {
	OrderID       uuid.UUID `json:"order_id"`
	Tax           float64   `json:"tax"`
	Discount      float64   `json:"discount"`
	PaymentMethod string    `json:"payment_method"`
	Reference     string    `json:"reference,omitempty"`
	Client        *Client   `json:"client,omitempty"`
}
