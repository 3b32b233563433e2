package records

import (
	"errors"
	"net/http"

	"github.com/appetiteclub/apt"
	"github.com/shopspring/decimal"

	"github.com/appetiteclub/frontdesk/pkg/enums/invoicestatus"
	"github.com/appetiteclub/frontdesk/pkg/enums/orderstatus"
	"github.com/appetiteclub/frontdesk/pkg/enums/paymentmethod"
	"github.com/appetiteclub/frontdesk/pkg/event"
	"github.com/appetiteclub/frontdesk/pkg/money"
)

// CreateInvoice settles a billable order. One invoice exists per order and
// the order is closed together with the invoice write; if closing fails the
// invoice is removed again. Releasing the table is left to the caller.
func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateInvoice")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req InvoiceCreateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	if h.respondValidation(w, log, ValidateInvoiceCreate(ctx, req)) {
		return
	}

	order, err := h.orderRepo.Get(ctx, req.OrderID)
	if err != nil {
		log.Error("error loading order", "error", err, "order_id", req.OrderID.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not create invoice")
		return
	}
	if order == nil {
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	existing, err := h.invoiceRepo.GetByOrder(ctx, order.ID)
	if err != nil {
		log.Error("error checking invoice", "error", err, "order_id", order.ID.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not create invoice")
		return
	}
	if existing != nil {
		apt.RespondError(w, http.StatusConflict, "Order already invoiced")
		return
	}

	if !order.IsBillable() {
		apt.RespondError(w, http.StatusConflict, "Order is not billable in status "+order.Status)
		return
	}

	base := order.BaseCost()
	tax := decimal.NewFromFloat(req.Tax)
	discount := decimal.NewFromFloat(req.Discount)
	total := money.Round(base.Add(tax).Sub(discount))
	if total.IsNegative() {
		apt.RespondError(w, http.StatusBadRequest, "Discount exceeds amount due")
		return
	}

	number, err := h.invoiceRepo.NextNumber(ctx)
	if err != nil {
		log.Error("cannot allocate invoice number", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not create invoice")
		return
	}

	invoice := NewInvoice()
	invoice.Number = number
	invoice.OrderID = order.ID
	invoice.TableID = order.TableID
	invoice.BaseCost = money.Float(base)
	invoice.Tax = money.Float(tax)
	invoice.Discount = money.Float(discount)
	invoice.Total = money.Float(total)
	invoice.PaymentMethod = paymentmethod.ByName(req.PaymentMethod).Name
	invoice.Reference = req.Reference
	invoice.Client = req.Client
	invoice.BeforeCreate()

	if err := h.invoiceRepo.Create(ctx, invoice); err != nil {
		if errors.Is(err, ErrDuplicate) {
			apt.RespondError(w, http.StatusConflict, "Order already invoiced")
			return
		}
		log.Error("cannot create invoice", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not create invoice")
		return
	}

	previous := order.Status
	closed, err := h.orderRepo.UpdateStatus(ctx, order.ID, orderstatus.Statuses.Closed.Name,
		orderstatus.Statuses.Ready.Name, orderstatus.Statuses.Delivered.Name)
	if err != nil {
		if delErr := h.invoiceRepo.Delete(ctx, invoice.ID); delErr != nil {
			log.Error("cannot remove invoice after failed close", "error", delErr, "invoice_id", invoice.ID.String())
		}
		if errors.Is(err, ErrConflict) {
			apt.RespondError(w, http.StatusConflict, "Order status changed")
			return
		}
		log.Error("cannot close order", "error", err, "order_id", order.ID.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not create invoice")
		return
	}

	h.publishInvoiceEvent(ctx, invoice, event.EventInvoiceCreated)
	h.publishOrderEvent(ctx, closed, event.EventOrderStatusChanged, previous)

	links := apt.RESTfulLinksFor(invoice)
	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, invoice, links...)
}

func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListInvoices")
	defer finish()

	log := h.log(r)

	invoices, err := h.invoiceRepo.List(r.Context())
	if err != nil {
		log.Error("error retrieving invoices", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve invoices")
		return
	}

	apt.RespondCollection(w, invoices, "invoice")
}

func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetInvoice")
	defer finish()

	log := h.log(r)

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	invoice, err := h.invoiceRepo.Get(r.Context(), id)
	if err != nil {
		log.Error("error loading invoice", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve invoice")
		return
	}
	if invoice == nil {
		apt.RespondError(w, http.StatusNotFound, "Invoice not found")
		return
	}

	links := apt.RESTfulLinksFor(invoice)
	apt.RespondSuccess(w, invoice, links...)
}

// UpdateInvoice corrects the status of an invoice after the fact.
func (h *Handler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateInvoice")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req InvoiceUpdateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	if h.respondValidation(w, log, ValidateInvoiceUpdate(ctx, id, req)) {
		return
	}

	invoice, err := h.invoiceRepo.Get(ctx, id)
	if err != nil || invoice == nil {
		log.Error("invoice not found", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Invoice not found")
		return
	}

	status := invoicestatus.ByName(req.Status).Name
	changed := invoice.Status != status
	invoice.Status = status
	invoice.BeforeUpdate()

	if err := h.invoiceRepo.Save(ctx, invoice); err != nil {
		log.Error("cannot update invoice", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not update invoice")
		return
	}

	if changed {
		h.publishInvoiceEvent(ctx, invoice, event.EventInvoiceStatusChanged)
	}

	links := apt.RESTfulLinksFor(invoice)
	apt.RespondSuccess(w, invoice, links...)
}
