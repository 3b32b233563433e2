// Package frontdesk exposes the order lifecycle over HTTP: guest sessions and
// carts, the kitchen board and the billing counter.
package frontdesk

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/billing"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/kitchen"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/session"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/submission"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/tableregistry"
)

const MaxBodyBytes = 1 << 20

// MenuStore is the read only catalog.
type MenuStore interface {
	ListCategories(ctx context.Context) ([]restaurant.Category, error)
	ListDishes(ctx context.Context, categoryID uuid.UUID, availableOnly bool) ([]restaurant.Dish, error)
	GetDish(ctx context.Context, id uuid.UUID) (*restaurant.Dish, error)
}

type Handler struct {
	sessions *session.Manager
	tables   *tableregistry.Registry
	menu     MenuStore
	gateway  *submission.Gateway
	kitchen  *kitchen.Engine
	billing  *billing.Desk
	notices  *NoticeBoard
	logger   apt.Logger
	config   *apt.Config
	tlm      *telemetry.HTTP
}

type Services struct {
	Sessions *session.Manager
	Tables   *tableregistry.Registry
	Gateway  *submission.Gateway
	Kitchen  *kitchen.Engine
	Billing  *billing.Desk
}

type HandlerDeps struct {
	Services Services
	Menu     MenuStore
	Notices  *NoticeBoard
}

func NewHandler(hd HandlerDeps, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	notices := hd.Notices
	if notices == nil {
		notices = NewNoticeBoard(DefaultNoticeCapacity)
	}

	return &Handler{
		sessions: hd.Services.Sessions,
		tables:   hd.Services.Tables,
		menu:     hd.Menu,
		gateway:  hd.Services.Gateway,
		kitchen:  hd.Services.Kitchen,
		billing:  hd.Services.Billing,
		notices:  notices,
		logger:   logger,
		config:   config,
		tlm:      telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.StartSession)
		r.Route("/{sid}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.EndSession)

			r.Put("/table", h.BindTable)
			r.Delete("/table", h.UnbindTable)

			r.Get("/cart", h.GetCart)
			r.Delete("/cart", h.ClearCart)
			r.Post("/cart/items", h.AddCartItem)
			r.Put("/cart/items/{dishID}", h.SetCartItemQuantity)
			r.Delete("/cart/items/{dishID}", h.RemoveCartItem)

			r.Post("/orders", h.SubmitOrder)
			r.Get("/orders", h.TrackOrders)
		})
	})

	r.Route("/menu", func(r chi.Router) {
		r.Get("/categories", h.ListCategories)
		r.Get("/dishes", h.ListDishes)
	})
	r.Get("/tables", h.ListTables)

	r.Route("/kitchen", func(r chi.Router) {
		r.Get("/board", h.GetBoard)
		r.Post("/orders/{id}/advance", h.AdvanceOrder)
		r.Post("/orders/{id}/revert", h.RevertOrder)
		r.Post("/orders/{id}/transition", h.TransitionOrder)
	})

	r.Route("/billing", func(r chi.Router) {
		r.Get("/orders", h.ListBillable)
		r.Post("/orders/{id}/deliver", h.DeliverOrder)
		r.Get("/draft", h.GetDraft)
		r.Put("/draft", h.UpdateDraft)
		r.Post("/settle", h.Settle)
	})

	r.Get("/notices", h.ListNotices)
}

// Helper methods

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", apt.RequestIDFrom(r.Context()))
}

func (h *Handler) parseUUIDParam(w http.ResponseWriter, r *http.Request, log apt.Logger, name string) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, name)
	if idStr == "" {
		log.Debug("missing parameter", "param", name)
		apt.RespondError(w, http.StatusBadRequest, "Missing "+name+" parameter")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Debug("invalid parameter", "param", name, "value", idStr, "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid "+name+" parameter")
		return uuid.Nil, false
	}

	return id, true
}

// session resolves the {sid} parameter to a live session.
func (h *Handler) session(w http.ResponseWriter, r *http.Request, log apt.Logger) (*session.Session, bool) {
	sid := chi.URLParam(r, "sid")
	if sid == "" {
		apt.RespondError(w, http.StatusBadRequest, "Missing session id")
		return nil, false
	}

	s, err := h.sessions.Get(r.Context(), sid)
	if err != nil {
		h.respondErr(w, log, err, "Could not load session")
		return nil, false
	}
	return s, true
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

// decodeOptionalPayload is decodePayload for bodies that may be empty.
func (h *Handler) decodeOptionalPayload(w http.ResponseWriter, r *http.Request, log apt.Logger, dest interface{}) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	return h.decodePayload(w, r, log, dest)
}

// respondErr maps core errors to HTTP status codes.
func (h *Handler) respondErr(w http.ResponseWriter, log apt.Logger, err error, fallback string) {
	var verr *restaurant.ValidationError

	switch {
	case errors.As(err, &verr):
		log.Debug("validation failed", "field", verr.Field, "reason", verr.Reason)
		apt.RespondError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, restaurant.ErrTableUnassigned):
		apt.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, restaurant.ErrSessionNotFound):
		apt.RespondError(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, restaurant.ErrTableOccupied),
		errors.Is(err, restaurant.ErrConflict),
		errors.Is(err, restaurant.ErrDuplicateSubmission):
		log.Info("request conflicts with current state", "error", err)
		apt.RespondError(w, http.StatusConflict, err.Error())
	case restaurant.IsNetwork(err):
		log.Error("record store call failed", "error", err)
		apt.RespondError(w, http.StatusBadGateway, fallback)
	default:
		log.Error("request failed", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, fallback)
	}
}
