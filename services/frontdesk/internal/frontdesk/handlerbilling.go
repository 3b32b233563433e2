package frontdesk

import (
	"net/http"

	"github.com/appetiteclub/apt"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/billing"
)

// ListBillable re-reads the orders that can be settled.
func (h *Handler) ListBillable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListBillable")
	defer finish()

	log := h.log(r)

	orders, err := h.billing.Billable(r.Context())
	if err != nil {
		h.respondErr(w, log, err, "Could not retrieve billable orders")
		return
	}

	apt.RespondCollection(w, orders, "order")
}

func (h *Handler) DeliverOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeliverOrder")
	defer finish()

	log := h.log(r)

	id, ok := h.parseUUIDParam(w, r, log, "id")
	if !ok {
		return
	}

	order, err := h.billing.Deliver(r.Context(), id)
	if err != nil {
		h.respondErr(w, log, err, "Could not mark order delivered")
		return
	}

	apt.RespondSuccess(w, order)
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetDraft")
	defer finish()

	apt.RespondSuccess(w, h.billing.Draft())
}

func (h *Handler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateDraft")
	defer finish()

	log := h.log(r)

	var req billing.DraftUpdate
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	view, err := h.billing.UpdateDraft(req)
	if err != nil {
		h.respondErr(w, log, err, "Could not update draft")
		return
	}

	apt.RespondSuccess(w, view)
}

func (h *Handler) Settle(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Settle")
	defer finish()

	log := h.log(r)

	settlement, err := h.billing.Settle(r.Context())
	if err != nil {
		h.respondErr(w, log, err, "Could not settle order")
		return
	}

	log.Info("order settled", "invoice", settlement.Invoice.Number, "table_released", settlement.TableReleased)
	apt.RespondSuccess(w, settlement)
}
