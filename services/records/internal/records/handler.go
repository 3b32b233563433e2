package records

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/pkg"
	"github.com/appetiteclub/frontdesk/pkg/event"
)

const MaxBodyBytes = 1 << 20

const recordsEventSource = "records-service"

type Handler struct {
	tableRepo    TableRepo
	menuRepo     MenuRepo
	orderRepo    OrderRepo
	invoiceRepo  InvoiceRepo
	publisher    events.Publisher
	restaurantID string
	logger       apt.Logger
	config       *apt.Config
	tlm          *telemetry.HTTP
}

type Repos struct {
	TableRepo   TableRepo
	MenuRepo    MenuRepo
	OrderRepo   OrderRepo
	InvoiceRepo InvoiceRepo
}

type HandlerDeps struct {
	Repos     Repos
	Publisher events.Publisher
}

func NewHandler(hd HandlerDeps, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}

	restaurantID := "main"
	if config != nil {
		restaurantID = config.GetStringOrDef("restaurant.id", "main")
	}

	return &Handler{
		tableRepo:    hd.Repos.TableRepo,
		menuRepo:     hd.Repos.MenuRepo,
		orderRepo:    hd.Repos.OrderRepo,
		invoiceRepo:  hd.Repos.InvoiceRepo,
		publisher:    hd.Publisher,
		restaurantID: restaurantID,
		logger:       logger,
		config:       config,
		tlm:          telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/tables", func(r chi.Router) {
		r.Get("/", h.ListTables)
		r.Get("/{id}", h.GetTable)
		r.Patch("/{id}", h.UpdateTableOccupancy)
	})

	r.Get("/categories", h.ListCategories)
	r.Route("/dishes", func(r chi.Router) {
		r.Get("/", h.ListDishes)
		r.Get("/{id}", h.GetDish)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/", h.ListOrders)
		r.Get("/{id}", h.GetOrder)
		r.Patch("/{id}", h.UpdateOrderStatus)
	})

	r.Route("/invoices", func(r chi.Router) {
		r.Post("/", h.CreateInvoice)
		r.Get("/", h.ListInvoices)
		r.Get("/{id}", h.GetInvoice)
		r.Patch("/{id}", h.UpdateInvoice)
	})
}

func (h *Handler) publishOrderEvent(ctx context.Context, order *Order, eventType, previousStatus string) {
	if h.publisher == nil || order == nil {
		return
	}

	evt := event.OrderEvent{
		EventType:      eventType,
		OccurredAt:     time.Now().UTC(),
		OrderID:        order.ID.String(),
		TableID:        order.TableID.String(),
		TableNumber:    order.TableNumber,
		Status:         order.Status,
		PreviousStatus: previousStatus,
		Note:           order.Note,
		CreatedAt:      order.CreatedAt,
	}
	for _, item := range order.Items {
		evt.Items = append(evt.Items, event.OrderLine{
			DishID:    item.DishID.String(),
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	h.publish(ctx, event.OrdersTopic(h.restaurantID), evt, "order_id", order.ID.String())
}

func (h *Handler) publishTableOccupancyChanged(ctx context.Context, table *Table, previous, reason string) {
	if h.publisher == nil || table == nil {
		return
	}

	evt := pkg.TableOccupancyEvent{
		EventType:         pkg.EventTableOccupancyChanged,
		TableID:           table.ID.String(),
		TableNumber:       table.Number,
		Occupancy:         table.Occupancy,
		PreviousOccupancy: previous,
		Reason:            reason,
		Source:            recordsEventSource,
		OccurredAt:        time.Now().UTC(),
	}

	h.publish(ctx, pkg.TablesTopic(h.restaurantID), evt, "table_id", table.ID.String())
}

func (h *Handler) publishInvoiceEvent(ctx context.Context, invoice *Invoice, eventType string) {
	if h.publisher == nil || invoice == nil {
		return
	}

	evt := event.InvoiceEvent{
		EventType:     eventType,
		OccurredAt:    time.Now().UTC(),
		InvoiceID:     invoice.ID.String(),
		Number:        invoice.Number,
		OrderID:       invoice.OrderID.String(),
		TableID:       invoice.TableID.String(),
		Total:         invoice.Total,
		PaymentMethod: invoice.PaymentMethod,
		Status:        invoice.Status,
	}

	h.publish(ctx, event.InvoicesTopic(h.restaurantID), evt, "invoice_id", invoice.ID.String())
}

func (h *Handler) publish(ctx context.Context, topic string, evt interface{}, idKey, id string) {
	payload, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("cannot marshal event", "error", err, "topic", topic, idKey, id)
		return
	}

	if err := h.publisher.Publish(ctx, topic, payload); err != nil {
		h.logger.Error("cannot publish event", "error", err, "topic", topic, idKey, id)
	}
}

// Helper methods

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", apt.RequestIDFrom(r.Context()))
}

func (h *Handler) parseIDParam(w http.ResponseWriter, r *http.Request, log apt.Logger) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		log.Debug("missing id parameter")
		apt.RespondError(w, http.StatusBadRequest, "Missing id parameter")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Debug("invalid id parameter", "id", idStr, "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid id parameter")
		return uuid.Nil, false
	}

	return id, true
}

// decodePayload reads a bounded JSON body into dest.
func (h *Handler) decodePayload(w http.ResponseWriter, r *http.Request, log apt.Logger, dest interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("error reading request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Could not read request body")
		return false
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		apt.RespondError(w, http.StatusBadRequest, "Request body is empty")
		return false
	}

	if err := json.Unmarshal(body, dest); err != nil {
		log.Debug("error decoding JSON", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON payload")
		return false
	}

	return true
}

func (h *Handler) respondValidation(w http.ResponseWriter, log apt.Logger, validationErrors []string) bool {
	if len(validationErrors) == 0 {
		return false
	}
	log.Debug("validation failed", "errors", validationErrors)
	apt.RespondError(w, http.StatusBadRequest, "Validation failed: "+strings.Join(validationErrors, "; "))
	return true
}
