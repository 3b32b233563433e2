package frontdesk

import (
	"net/http"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/session"
)

type bindTableRequest struct {
	TableID uuid.UUID `json:"table_id"`
}

type addItemRequest struct {
	DishID uuid.UUID `json:"dish_id"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type submitRequest struct {
	Note string `json:"note"`
}

func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.StartSession")
	defer finish()

	log := h.log(r)

	s, err := h.sessions.Begin(r.Context())
	if err != nil {
		h.respondErr(w, log, err, "Could not start session")
		return
	}

	log.Info("session started", "session_id", s.ID)
	apt.RespondSuccess(w, s.View())
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetSession")
	defer finish()

	log := h.log(r)

	s, ok := h.session(w, r, log)
	if !ok {
		return
	}

	apt.RespondSuccess(w, s.View())
}

// EndSession is the explicit logout.
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.EndSession")
	defer finish()

	log := h.log(r)

	s, ok := h.session(w, r, log)
	if !ok {
		return
	}

	if err := h.sessions.End(r.Context(), s.ID); err != nil {
		h.respondErr(w, log, err, "Could not end session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) BindTable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.BindTable")
	defer finish()

	log := h.log(r)

	s, ok := h.session(w, r, log)
	if !ok {
		return
	}

	var req bindTableRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	if _, err := h.sessions.BindTable(r.Context(), s, req.TableID); err != nil {
		h.respondErr(w, log, err, "Could not bind table")
		return
	}

	apt.RespondSuccess(w, s.View())
}

func (h *Handler) UnbindTable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UnbindTable")
	defer finish()

	log := h.log(r)

	s, ok := h.session(w, r, log)
	if !ok {
		return
	}

	if err := h.sessions.UnbindTable(r.Context(), s); err != nil {
		h.respondErr(w, log, err, "Could not release table")
		return
	}

	apt.RespondSuccess(w, s.View())
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetCart")
	defer finish()

	log := h.log(r)

	s, ok := h.session(w, r, log)
	if !ok {
		return
	}

	apt.RespondSuccess(w, s.View())
}

// AddCartItem adds one unit of a dish read from the catalog. The price in
// the cart is the catalog price at the time of adding.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AddCartItem")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	s, ok := h.session(w, r, log)
	if !ok {
		return
	}

	var req addItemRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}
	if req.DishID == uuid.Nil {
		h.respondErr(w, log, restaurant.NewValidationError("dish_id", "is required"), "")
		return
	}

	dish, err := h.menu.GetDish(ctx, req.DishID)
	if err != nil {
		h.respondErr(w, log, err, "Could not load dish")
		return
	}

	err = h.sessions.Do(ctx, s, func(st *session.State) error {
		return st.Cart.Add(*dish)
	})
	if err != nil {
		h.respondErr(w, log, err, "Could not update cart")
		return
	}

	apt.RespondSuccess(w, s.View())
}

func (h *Handler) SetCartItemQuantity(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SetCartItemQuantity")
	defer finish()

	log := h.log(r)

	s, ok := h.session(w, r, log)
	if !ok {
		return
	}

	dishID, ok := h.parseUUIDParam(w, r, log, "dishID")
	if !ok {
		return
	}

	var req quantityRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	var found bool
	err := h.sessions.Do(r.Context(), s, func(st *session.State) error {
		found = st.Cart.SetQuantity(dishID, req.Quantity)
		return nil
	})
	if err != nil {
		h.respondErr(w, log, err, "Could not update cart")
		return
	}
	if !found {
		apt.RespondError(w, http.StatusNotFound, "Dish not in cart")
		return
	}

	apt.RespondSuccess(w, s.View())
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RemoveCartItem")
	defer finish()

	log := h.log(r)

	s, ok := h.session(w, r, log)
	if !ok {
		return
	}

	dishID, ok := h.parseUUIDParam(w, r, log, "dishID")
	if !ok {
		return
	}

	err := h.sessions.Do(r.Context(), s, func(st *session.State) error {
		st.Cart.Remove(dishID)
		return nil
	})
	if err != nil {
		h.respondErr(w, log, err, "Could not update cart")
		return
	}

	apt.RespondSuccess(w, s.View())
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ClearCart")
	defer finish()

	log := h.log(r)

	s, ok := h.session(w, r, log)
	if !ok {
		return
	}

	err := h.sessions.Do(r.Context(), s, func(st *session.State) error {
		st.Cart.Clear()
		return nil
	})
	if err != nil {
		h.respondErr(w, log, err, "Could not update cart")
		return
	}

	apt.RespondSuccess(w, s.View())
}

func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SubmitOrder")
	defer finish()

	log := h.log(r)

	s, ok := h.session(w, r, log)
	if !ok {
		return
	}

	var req submitRequest
	if !h.decodeOptionalPayload(w, r, log, &req) {
		return
	}

	result, err := h.gateway.Submit(r.Context(), s, req.Note)
	if err != nil {
		h.respondErr(w, log, err, "Could not submit order")
		return
	}

	apt.RespondSuccess(w, result)
}

func (h *Handler) TrackOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.TrackOrders")
	defer finish()

	log := h.log(r)

	s, ok := h.session(w, r, log)
	if !ok {
		return
	}

	orders, err := h.gateway.Track(r.Context(), s)
	if err != nil {
		h.respondErr(w, log, err, "Could not load orders")
		return
	}

	apt.RespondCollection(w, orders, "order")
}
