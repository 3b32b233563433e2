// Package submission turns a session cart into a persisted order.
package submission

import (
	"context"
	"errors"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/session"
)

// OrderStore is the record store contract the gateway needs.
type OrderStore interface {
	CreateOrder(ctx context.Context, draft restaurant.OrderDraft) (*restaurant.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*restaurant.Order, error)
}

// Result is what a successful submission hands back: the stored order and
// where the caller goes to follow it.
type Result struct {
	Order        restaurant.Order `json:"order"`
	TrackingPath string           `json:"tracking_path"`
}

type Gateway struct {
	orders   OrderStore
	sessions *session.Manager
	notifier restaurant.Notifier
	logger   apt.Logger
	newID    func() uuid.UUID
}

func NewGateway(orders OrderStore, sessions *session.Manager, notifier restaurant.Notifier, logger apt.Logger) *Gateway {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	if notifier == nil {
		notifier = restaurant.DiscardNotices
	}
	return &Gateway{
		orders:   orders,
		sessions: sessions,
		notifier: notifier,
		logger:   logger,
		newID:    apt.GenerateNewID,
	}
}

// Submit sends the session cart as a new order for the bound table. The
// preconditions are checked before any call is made. On failure the cart is
// left exactly as it was. Once the record store accepted the order the
// submission stands, even if the cleared cart could not be saved. Table
// occupancy is not touched here; the table was claimed when it was bound.
func (g *Gateway) Submit(ctx context.Context, s *session.Session, note string) (*Result, error) {
	var result *Result

	err := g.sessions.Record(ctx, s, func(st *session.State) error {
		if st.Table == nil {
			return restaurant.NewValidationError("table_id", restaurant.ErrNoTableBound.Error())
		}
		if st.Table.ID == uuid.Nil {
			return restaurant.NewValidationError("table_id", restaurant.ErrTableUnassigned.Error())
		}
		if st.Cart.TotalItems() == 0 {
			return restaurant.NewValidationError("cart", restaurant.ErrEmptyCart.Error())
		}

		id := g.newID()
		if st.HasSubmitted(id) {
			return fmt.Errorf("order %s: %w", id.String(), restaurant.ErrDuplicateSubmission)
		}

		draft := restaurant.OrderDraft{
			ID:      id,
			TableID: st.Table.ID,
			Items:   st.Cart.Items(),
			Note:    note,
		}

		order, err := g.orders.CreateOrder(ctx, draft)
		if err != nil {
			return err
		}

		st.RecordSubmission(order.ID)
		st.Cart.Clear()

		result = &Result{
			Order:        *order,
			TrackingPath: fmt.Sprintf("/sessions/%s/orders", s.ID),
		}
		return nil
	})

	var persistErr *session.PersistError
	if errors.As(err, &persistErr) && result != nil {
		g.logger.Error("order submitted but session not saved", "session_id", s.ID, "order_id", result.Order.ID.String(), "error", persistErr)
		err = nil
	}
	if err != nil {
		g.report(s, err)
		return nil, err
	}

	g.logger.Info("order submitted", "session_id", s.ID, "order_id", result.Order.ID.String(), "table", result.Order.TableNumber)
	g.notifier.Notify(restaurant.NewNotice(restaurant.LevelInfo, restaurant.KindSuccess,
		fmt.Sprintf("Order for table %d sent to the kitchen", result.Order.TableNumber)))
	return result, nil
}

func (g *Gateway) report(s *session.Session, err error) {
	switch {
	case restaurant.IsValidation(err):
		g.notifier.Notify(restaurant.NewNotice(restaurant.LevelWarning, restaurant.KindValidation, err.Error()))
	case errors.Is(err, restaurant.ErrDuplicateSubmission):
		g.logger.Info("duplicate submission skipped", "session_id", s.ID, "error", err)
		g.notifier.Notify(restaurant.NewNotice(restaurant.LevelWarning, restaurant.KindDuplicate, "Order was already submitted"))
	default:
		g.logger.Error("cannot submit order", "session_id", s.ID, "error", err)
		g.notifier.Notify(restaurant.NewNotice(restaurant.LevelError, restaurant.KindNetwork, "Could not send the order, please retry"))
	}
}

// Track returns the current state of every order submitted from the session.
// Orders that cannot be read are skipped and logged.
func (g *Gateway) Track(ctx context.Context, s *session.Session) ([]restaurant.Order, error) {
	submitted := s.View().Submitted

	orders := make([]restaurant.Order, 0, len(submitted))
	var lastErr error
	for _, id := range submitted {
		order, err := g.orders.GetOrder(ctx, id)
		if err != nil {
			g.logger.Error("cannot track order", "session_id", s.ID, "order_id", id.String(), "error", err)
			lastErr = err
			continue
		}
		orders = append(orders, *order)
	}

	if len(orders) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return orders, nil
}
