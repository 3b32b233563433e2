package billing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/appetiteclub/frontdesk/pkg/enums/orderstatus"
	"github.com/appetiteclub/frontdesk/pkg/money"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
)

// DefaultResetDelay is how long the success state stays on the form.
const DefaultResetDelay = 3 * time.Second

type OrderStore interface {
	ListOrders(ctx context.Context, status string) ([]restaurant.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status, expected string) (*restaurant.Order, error)
}

type InvoiceStore interface {
	CreateInvoice(ctx context.Context, draft restaurant.InvoiceDraft) (*restaurant.Invoice, error)
}

type TableReleaser interface {
	Release(ctx context.Context, tableID uuid.UUID) error
}

// Settlement is the result of a confirmed invoice.
type Settlement struct {
	Invoice       restaurant.Invoice `json:"invoice"`
	Total         string             `json:"total"`
	TableReleased bool               `json:"table_released"`
}

// DraftUpdate carries the form fields that changed. Nil fields are left as
// they are.
type DraftUpdate struct {
	OrderID       *uuid.UUID         `json:"order_id,omitempty"`
	Tax           *decimal.Decimal   `json:"tax,omitempty"`
	Discount      *decimal.Decimal   `json:"discount,omitempty"`
	PaymentMethod *string            `json:"payment_method,omitempty"`
	Reference     *string            `json:"reference,omitempty"`
	Formal        *bool              `json:"formal,omitempty"`
	Client        *restaurant.Client `json:"client,omitempty"`
}

// Desk is the billing counter: the list of billable orders and the draft
// being settled.
type Desk struct {
	orders     OrderStore
	invoices   InvoiceStore
	tables     TableReleaser
	notifier   restaurant.Notifier
	resetDelay time.Duration
	logger     apt.Logger

	settleMu sync.Mutex

	mu       sync.Mutex
	billable []restaurant.Order
	draft    *Draft
	settled  *Settlement
	reset    *time.Timer
}

func NewDesk(orders OrderStore, invoices InvoiceStore, tables TableReleaser, notifier restaurant.Notifier, resetDelay time.Duration, logger apt.Logger) *Desk {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	if notifier == nil {
		notifier = restaurant.DiscardNotices
	}
	if resetDelay <= 0 {
		resetDelay = DefaultResetDelay
	}
	return &Desk{
		orders:     orders,
		invoices:   invoices,
		tables:     tables,
		notifier:   notifier,
		resetDelay: resetDelay,
		logger:     logger,
		draft:      NewDraft(),
	}
}

func (d *Desk) Start(ctx context.Context) error {
	if _, err := d.Billable(ctx); err != nil {
		d.logger.Error("cannot load billable orders", "error", err)
	}
	return nil
}

func (d *Desk) Stop(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.reset != nil {
		d.reset.Stop()
		d.reset = nil
	}
	return nil
}

// Billable re-reads the orders that can be settled.
func (d *Desk) Billable(ctx context.Context) ([]restaurant.Order, error) {
	orders, err := d.orders.ListOrders(ctx, orderstatus.Preparable)
	if err != nil {
		return nil, err
	}

	list := make([]restaurant.Order, 0, len(orders))
	for _, o := range orders {
		if orderstatus.Billable(o.Status) {
			list = append(list, o.Clone())
		}
	}

	d.mu.Lock()
	d.billable = list
	d.mu.Unlock()

	return d.Listed(), nil
}

// Listed returns the last fetched billable orders.
func (d *Desk) Listed() []restaurant.Order {
	d.mu.Lock()
	defer d.mu.Unlock()

	list := make([]restaurant.Order, len(d.billable))
	for i := range d.billable {
		list[i] = d.billable[i].Clone()
	}
	return list
}

func (d *Desk) Draft() DraftView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.viewLocked()
}

// Select puts a billable order on the form.
func (d *Desk) Select(orderID uuid.UUID) (DraftView, error) {
	return d.UpdateDraft(DraftUpdate{OrderID: &orderID})
}

// UpdateDraft applies the changed fields all together or not at all.
func (d *Desk) UpdateDraft(u DraftUpdate) (DraftView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	next := d.draft.Clone()

	if u.OrderID != nil {
		order, ok := d.findLocked(*u.OrderID)
		if !ok {
			return d.viewLocked(), restaurant.NewValidationError("order_id", "order is not billable")
		}
		next.Select(order)
	}
	if u.Tax != nil {
		if err := next.SetTax(*u.Tax); err != nil {
			return d.viewLocked(), err
		}
	}
	if u.Discount != nil {
		if err := next.SetDiscount(*u.Discount); err != nil {
			return d.viewLocked(), err
		}
	}
	if u.PaymentMethod != nil {
		if err := next.SetMethod(*u.PaymentMethod); err != nil {
			return d.viewLocked(), err
		}
	}
	if u.Reference != nil {
		next.SetReference(*u.Reference)
	}
	if u.Formal != nil {
		next.RequestFormalInvoice(*u.Formal)
	}
	if u.Client != nil {
		next.SetClient(*u.Client)
	}

	d.draft = next
	return d.viewLocked(), nil
}

// Settle validates the draft, stores the invoice and frees the table. A
// failed invoice leaves everything as it was. A failed release does not undo
// the invoice; it is logged and reported.
func (d *Desk) Settle(ctx context.Context) (*Settlement, error) {
	d.settleMu.Lock()
	defer d.settleMu.Unlock()

	d.mu.Lock()
	draft := d.draft.Clone()
	already := d.settled != nil && draft.Order() != nil && d.settled.Invoice.OrderID == draft.Order().ID
	d.mu.Unlock()

	if already {
		return nil, restaurant.NewValidationError("order_id", "order already settled")
	}

	if err := draft.Validate(); err != nil {
		d.notifier.Notify(restaurant.NewNotice(restaurant.LevelWarning, restaurant.KindValidation, err.Error()))
		return nil, err
	}

	order := *draft.Order()
	invoice, err := d.invoices.CreateInvoice(ctx, draft.Invoice())
	if err != nil {
		d.logger.Error("cannot create invoice", "order_id", order.ID.String(), "error", err)
		d.notifier.Notify(restaurant.NewNotice(restaurant.LevelError, restaurant.KindNetwork,
			fmt.Sprintf("Could not bill table %d, please retry", order.TableNumber)))
		return nil, err
	}

	settlement := &Settlement{
		Invoice:       *invoice,
		Total:         money.Format(draft.Total()),
		TableReleased: true,
	}

	if err := d.tables.Release(ctx, order.TableID); err != nil {
		settlement.TableReleased = false
		d.logger.Error("invoice saved but table not released", "invoice_id", invoice.ID.String(), "table_id", order.TableID.String(), "error", err)
		d.notifier.Notify(restaurant.NewNotice(restaurant.LevelWarning, restaurant.KindNetwork,
			fmt.Sprintf("Invoice %d saved but table %d is still occupied", invoice.Number, order.TableNumber)))
	}

	d.mu.Lock()
	d.dropLocked(order.ID)
	d.settled = settlement
	d.scheduleResetLocked()
	d.mu.Unlock()

	d.logger.Info("order settled", "order_id", order.ID.String(), "invoice", invoice.Number, "total", settlement.Total)
	d.notifier.Notify(restaurant.NewNotice(restaurant.LevelInfo, restaurant.KindSuccess,
		fmt.Sprintf("Invoice %d issued for table %d", invoice.Number, order.TableNumber)))

	return settlement, nil
}

// Deliver marks a ready order as served at the table.
func (d *Desk) Deliver(ctx context.Context, orderID uuid.UUID) (*restaurant.Order, error) {
	d.mu.Lock()
	order, ok := d.findLocked(orderID)
	d.mu.Unlock()
	if !ok || order.Status != orderstatus.Statuses.Ready.Name {
		return nil, restaurant.NewValidationError("order_id", "order is not ready")
	}

	updated, err := d.orders.UpdateOrderStatus(ctx, orderID, orderstatus.Statuses.Delivered.Name, order.Status)
	if err != nil {
		if errors.Is(err, restaurant.ErrConflict) {
			d.notifier.Notify(restaurant.NewNotice(restaurant.LevelWarning, restaurant.KindConflict,
				fmt.Sprintf("Order for table %d was changed elsewhere", order.TableNumber)))
			if _, refreshErr := d.Billable(ctx); refreshErr != nil {
				d.logger.Error("cannot reload billable orders", "error", refreshErr)
			}
			return updated, err
		}
		d.logger.Error("cannot mark order delivered", "order_id", orderID.String(), "error", err)
		d.notifier.Notify(restaurant.NewNotice(restaurant.LevelError, restaurant.KindNetwork,
			fmt.Sprintf("Could not mark table %d as served", order.TableNumber)))
		return nil, err
	}

	d.mu.Lock()
	for i := range d.billable {
		if d.billable[i].ID == orderID {
			d.billable[i] = updated.Clone()
		}
	}
	if d.draft.Order() != nil && d.draft.Order().ID == orderID {
		d.draft.Select(*updated)
	}
	d.mu.Unlock()

	return updated, nil
}

func (d *Desk) scheduleResetLocked() {
	if d.reset != nil {
		d.reset.Stop()
	}
	d.reset = time.AfterFunc(d.resetDelay, d.resetForm)
}

func (d *Desk) resetForm() {
	d.mu.Lock()
	d.draft = NewDraft()
	d.settled = nil
	d.reset = nil
	d.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := d.Billable(ctx); err != nil {
		d.logger.Error("cannot reload billable orders", "error", err)
	}
}

func (d *Desk) findLocked(id uuid.UUID) (restaurant.Order, bool) {
	for _, o := range d.billable {
		if o.ID == id {
			return o.Clone(), true
		}
	}
	return restaurant.Order{}, false
}

func (d *Desk) dropLocked(id uuid.UUID) {
	kept := d.billable[:0]
	for _, o := range d.billable {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	d.billable = kept
}

func (d *Desk) viewLocked() DraftView {
	v := d.draft.View()
	if d.settled != nil {
		s := *d.settled
		v.Settled = &s
	}
	return v
}
