// Package billing settles billable orders into invoices and frees their
// tables.
package billing

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/appetiteclub/frontdesk/pkg/enums/paymentmethod"
	"github.com/appetiteclub/frontdesk/pkg/money"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
)

// MinReferenceDigits is the shortest payment reference accepted for methods
// other than cash.
const MinReferenceDigits = 6

const (
	ReasonNoOrder             = "no order selected"
	ReasonReferenceIncomplete = "reference incomplete"
	ReasonIDDocumentRequired  = "id document is required for a formal invoice"
	ReasonNameRequired        = "name is required for a formal invoice"
	ReasonDiscountExceeds     = "discount exceeds total"
	ReasonNegative            = "must not be negative"
	ReasonUnknownMethod       = "unknown payment method"
)

// Draft is the settlement form for one order. Amounts are kept as decimals
// and the total is derived on every read.
type Draft struct {
	order     *restaurant.Order
	tax       decimal.Decimal
	discount  decimal.Decimal
	method    paymentmethod.Method
	reference string
	formal    bool
	client    restaurant.Client
}

func NewDraft() *Draft {
	return &Draft{
		tax:      decimal.Zero,
		discount: decimal.Zero,
		method:   paymentmethod.Methods.Cash,
	}
}

func (d *Draft) Select(order restaurant.Order) {
	o := order.Clone()
	d.order = &o
}

func (d *Draft) Order() *restaurant.Order {
	return d.order
}

func (d *Draft) SetTax(v decimal.Decimal) error {
	if v.IsNegative() {
		return restaurant.NewValidationError("tax", ReasonNegative)
	}
	d.tax = money.Round(v)
	return nil
}

func (d *Draft) SetDiscount(v decimal.Decimal) error {
	if v.IsNegative() {
		return restaurant.NewValidationError("discount", ReasonNegative)
	}
	d.discount = money.Round(v)
	return nil
}

func (d *Draft) SetMethod(name string) error {
	m := paymentmethod.ByName(name)
	if m == nil {
		return restaurant.NewValidationError("payment_method", ReasonUnknownMethod)
	}
	d.method = *m
	return nil
}

// SetReference keeps only the digits of the input.
func (d *Draft) SetReference(s string) {
	d.reference = digitsOnly(s)
}

func (d *Draft) RequestFormalInvoice(formal bool) {
	d.formal = formal
}

func (d *Draft) SetClient(c restaurant.Client) {
	d.client = restaurant.Client{
		IDDocument: strings.TrimSpace(c.IDDocument),
		Name:       strings.TrimSpace(c.Name),
		Address:    strings.TrimSpace(c.Address),
		Phone:      strings.TrimSpace(c.Phone),
	}
}

func (d *Draft) BaseCost() decimal.Decimal {
	if d.order == nil {
		return decimal.Zero
	}
	return d.order.BaseCost()
}

// Total is base cost plus tax minus discount, in cents.
func (d *Draft) Total() decimal.Decimal {
	return money.Round(d.BaseCost().Add(d.tax).Sub(d.discount))
}

// Validate reports the first problem found, checking the selection, then the
// payment reference, then the client block of a formal invoice.
func (d *Draft) Validate() error {
	if d.order == nil || d.order.ID == uuid.Nil {
		return restaurant.NewValidationError("order_id", ReasonNoOrder)
	}
	if d.method.RequiresReference() && len(d.reference) < MinReferenceDigits {
		return restaurant.NewValidationError("reference", ReasonReferenceIncomplete)
	}
	if d.formal {
		if d.client.IDDocument == "" {
			return restaurant.NewValidationError("client.id_document", ReasonIDDocumentRequired)
		}
		if d.client.Name == "" {
			return restaurant.NewValidationError("client.name", ReasonNameRequired)
		}
	}
	if d.Total().IsNegative() {
		return restaurant.NewValidationError("discount", ReasonDiscountExceeds)
	}
	return nil
}

// Invoice builds the request for the record store. Without a formal invoice
// the client block is left out and the invoice goes to the final consumer.
func (d *Draft) Invoice() restaurant.InvoiceDraft {
	req := restaurant.InvoiceDraft{
		Tax:           money.Float(d.tax),
		Discount:      money.Float(d.discount),
		PaymentMethod: d.method.Name,
	}
	if d.order != nil {
		req.OrderID = d.order.ID
	}
	if d.method.RequiresReference() {
		req.Reference = d.reference
	}
	if d.formal {
		client := d.client
		req.Client = &client
	}
	return req
}

func (d *Draft) Clone() *Draft {
	c := *d
	if d.order != nil {
		o := d.order.Clone()
		c.order = &o
	}
	return &c
}

// DraftView is the form as shown at the counter.
type DraftView struct {
	OrderID       *uuid.UUID         `json:"order_id,omitempty"`
	TableNumber   int                `json:"table_number,omitempty"`
	BaseCost      string             `json:"base_cost"`
	Tax           string             `json:"tax"`
	Discount      string             `json:"discount"`
	Total         string             `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	Reference     string             `json:"reference"`
	Formal        bool               `json:"formal"`
	Client        *restaurant.Client `json:"client,omitempty"`
	Settled       *Settlement        `json:"settled,omitempty"`
}

func (d *Draft) View() DraftView {
	v := DraftView{
		BaseCost:      money.Format(d.BaseCost()),
		Tax:           money.Format(d.tax),
		Discount:      money.Format(d.discount),
		Total:         money.Format(d.Total()),
		PaymentMethod: d.method.Name,
		Reference:     d.reference,
		Formal:        d.formal,
	}
	if d.order != nil {
		id := d.order.ID
		v.OrderID = &id
		v.TableNumber = d.order.TableNumber
	}
	if d.formal {
		client := d.client
		v.Client = &client
	}
	return v
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
