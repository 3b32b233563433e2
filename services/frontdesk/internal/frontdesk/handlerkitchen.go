package frontdesk

import (
	"net/http"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/kitchen"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
)

type transitionRequest struct {
	Status string `json:"status"`
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetBoard")
	defer finish()

	if r.URL.Query().Get("refresh") == "true" {
		if err := h.kitchen.Refresh(r.Context()); err != nil {
			h.log(r).Info("serving board without refresh", "error", err)
		}
	}

	apt.RespondSuccess(w, h.kitchen.Board())
}

func (h *Handler) AdvanceOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AdvanceOrder")
	defer finish()

	h.moveOrder(w, r, func(id uuid.UUID) (kitchen.Outcome, error) {
		return h.kitchen.Advance(r.Context(), id)
	})
}

func (h *Handler) RevertOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RevertOrder")
	defer finish()

	h.moveOrder(w, r, func(id uuid.UUID) (kitchen.Outcome, error) {
		return h.kitchen.Revert(r.Context(), id)
	})
}

func (h *Handler) TransitionOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.TransitionOrder")
	defer finish()

	log := h.log(r)

	var req transitionRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}
	if req.Status == "" {
		h.respondErr(w, log, restaurant.NewValidationError("status", "is required"), "")
		return
	}

	h.moveOrder(w, r, func(id uuid.UUID) (kitchen.Outcome, error) {
		return h.kitchen.Transition(r.Context(), id, req.Status)
	})
}

// moveOrder answers with the outcome. A move the kitchen does not allow is
// not an error; the outcome says it was not applied.
func (h *Handler) moveOrder(w http.ResponseWriter, r *http.Request, move func(uuid.UUID) (kitchen.Outcome, error)) {
	log := h.log(r)

	id, ok := h.parseUUIDParam(w, r, log, "id")
	if !ok {
		return
	}

	outcome, err := move(id)
	if err != nil {
		h.respondErr(w, log, err, "Could not move order")
		return
	}

	apt.RespondSuccess(w, outcome)
}
