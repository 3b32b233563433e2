package records

import (
	"errors"
	"net/http"
	"sort"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/pkg/enums/orderstatus"
	"github.com/appetiteclub/frontdesk/pkg/event"
)

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateOrder")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req OrderCreateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	if h.respondValidation(w, log, ValidateOrderCreate(ctx, req)) {
		return
	}

	if req.ID != uuid.Nil {
		existing, err := h.orderRepo.Get(ctx, req.ID)
		if err != nil {
			log.Error("error checking order id", "error", err, "id", req.ID.String())
			apt.RespondError(w, http.StatusInternalServerError, "Could not create order")
			return
		}
		if existing != nil {
			apt.RespondError(w, http.StatusConflict, "Order already submitted")
			return
		}
	}

	table, err := h.tableRepo.Get(ctx, req.TableID)
	if err != nil {
		log.Error("error loading table", "error", err, "table_id", req.TableID.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not create order")
		return
	}
	if table == nil {
		apt.RespondError(w, http.StatusBadRequest, "Unknown table")
		return
	}

	items, msg, ok := h.snapshotItems(r, req.Items)
	if !ok {
		apt.RespondError(w, http.StatusBadRequest, msg)
		return
	}

	order := NewOrder()
	if req.ID != uuid.Nil {
		order.ID = req.ID
	}
	order.TableID = table.ID
	order.TableNumber = table.Number
	order.Items = items
	order.Note = req.Note
	order.CreatedBy = recordsEventSource
	order.UpdatedBy = recordsEventSource
	order.BeforeCreate()

	if err := h.orderRepo.Create(ctx, order); err != nil {
		if errors.Is(err, ErrDuplicate) {
			apt.RespondError(w, http.StatusConflict, "Order already submitted")
			return
		}
		log.Error("cannot create order", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not create order")
		return
	}

	h.publishOrderEvent(ctx, order, event.EventOrderCreated, "")

	links := apt.RESTfulLinksFor(order)
	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, order, links...)
}

// snapshotItems prices every line from the catalog so clients cannot set
// their own prices.
func (h *Handler) snapshotItems(r *http.Request, reqItems []OrderItemRequest) ([]LineItem, string, bool) {
	items := make([]LineItem, 0, len(reqItems))
	for _, item := range reqItems {
		dish, err := h.menuRepo.GetDish(r.Context(), item.DishID)
		if err != nil {
			h.log(r).Error("error loading dish", "error", err, "dish_id", item.DishID.String())
			return nil, "Could not load dish " + item.DishID.String(), false
		}
		if dish == nil {
			return nil, "Unknown dish " + item.DishID.String(), false
		}
		if !dish.Available {
			return nil, "Dish unavailable: " + dish.Name, false
		}
		items = append(items, LineItem{
			DishID:    dish.ID,
			Name:      dish.Name,
			UnitPrice: dish.Price,
			Quantity:  item.Quantity,
		})
	}
	return items, "", true
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListOrders")
	defer finish()

	log := h.log(r)
	ctx := r.Context()
	query := r.URL.Query()

	statuses, ok := orderstatus.Expand(query.Get("status"))
	if !ok {
		apt.RespondError(w, http.StatusBadRequest, "Invalid status filter")
		return
	}

	var orders []*Order
	var err error

	switch {
	case query.Get("table_id") != "":
		tableID, parseErr := uuid.Parse(query.Get("table_id"))
		if parseErr != nil {
			apt.RespondError(w, http.StatusBadRequest, "Invalid table_id parameter")
			return
		}
		orders, err = h.orderRepo.ListByTable(ctx, tableID)
		orders = filterByStatus(orders, statuses)
	case len(statuses) > 0:
		orders, err = h.orderRepo.ListByStatus(ctx, statuses...)
	default:
		orders, err = h.orderRepo.List(ctx)
	}

	if err != nil {
		log.Error("error retrieving orders", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})

	apt.RespondCollection(w, orders, "order")
}

func filterByStatus(orders []*Order, statuses []string) []*Order {
	if len(statuses) == 0 {
		return orders
	}
	allowed := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}
	filtered := orders[:0]
	for _, o := range orders {
		if allowed[o.Status] {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetOrder")
	defer finish()

	log := h.log(r)

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	order, err := h.orderRepo.Get(r.Context(), id)
	if err != nil {
		log.Error("error loading order", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve order")
		return
	}
	if order == nil {
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	links := apt.RESTfulLinksFor(order)
	apt.RespondSuccess(w, order, links...)
}

// UpdateOrderStatus moves an order along one edge of the workflow graph. The
// write is always fenced on the status read here; expected_status lets the
// caller fence on the status it last saw.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateOrderStatus")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req OrderStatusRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	if h.respondValidation(w, log, ValidateOrderStatus(ctx, id, req)) {
		return
	}

	order, err := h.orderRepo.Get(ctx, id)
	if err != nil {
		log.Error("error loading order", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not update order")
		return
	}
	if order == nil {
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	if req.ExpectedStatus != "" && order.Status != req.ExpectedStatus {
		log.Info("order status conflict", "id", id.String(), "expected", req.ExpectedStatus, "current", order.Status)
		apt.RespondError(w, http.StatusConflict, "Order status changed to "+order.Status)
		return
	}

	previous := order.Status
	if previous == req.Status {
		links := apt.RESTfulLinksFor(order)
		apt.RespondSuccess(w, order, links...)
		return
	}

	if !orderstatus.CanTransition(previous, req.Status) {
		apt.RespondError(w, http.StatusUnprocessableEntity, "Invalid status transition from "+previous+" to "+req.Status)
		return
	}

	updated, err := h.orderRepo.UpdateStatus(ctx, id, req.Status, previous)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			apt.RespondError(w, http.StatusConflict, "Order status changed")
			return
		}
		log.Error("cannot update order status", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not update order")
		return
	}

	h.publishOrderEvent(ctx, updated, event.EventOrderStatusChanged, previous)

	links := apt.RESTfulLinksFor(updated)
	apt.RespondSuccess(w, updated, links...)
}
