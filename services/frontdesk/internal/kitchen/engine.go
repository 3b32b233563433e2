// Package kitchen keeps the live board of open orders and moves them between
// kitchen states.
package kitchen

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/pkg/enums/orderstatus"
	"github.com/appetiteclub/frontdesk/pkg/event"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
)

// DefaultPollInterval is how often Run re-reads the open orders.
const DefaultPollInterval = 5 * time.Second

// OrderStore is the record store contract for orders. UpdateOrderStatus with
// an expected status fails with restaurant.ErrConflict, and returns the
// current order, when the stored status differs.
type OrderStore interface {
	ListOrders(ctx context.Context, status string) ([]restaurant.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status, expected string) (*restaurant.Order, error)
}

// Replayer hands back the order events a durable stream consumer has not
// acknowledged yet.
type Replayer interface {
	Fetch(ctx context.Context, limit int) ([]events.StreamMessage, error)
}

// replayLimit caps how many events Start replays.
const replayLimit = 10000

// Outcome describes what a transition did to the board.
type Outcome struct {
	Applied    bool              `json:"applied"`
	RolledBack bool              `json:"rolled_back"`
	Conflict   bool              `json:"conflict"`
	Order      *restaurant.Order `json:"order,omitempty"`
}

type entry struct {
	order restaurant.Order
	seq   uint64
}

type Engine struct {
	store    OrderStore
	notifier restaurant.Notifier
	interval time.Duration
	logger   apt.Logger
	replay   Replayer

	mu      sync.RWMutex
	orders  map[uuid.UUID]*entry
	seq     uint64
	version uint64

	cancel context.CancelFunc
	done   chan struct{}
}

func NewEngine(store OrderStore, notifier restaurant.Notifier, interval time.Duration, logger apt.Logger) *Engine {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	if notifier == nil {
		notifier = restaurant.DiscardNotices
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Engine{
		store:    store,
		notifier: notifier,
		interval: interval,
		logger:   logger,
		orders:   make(map[uuid.UUID]*entry),
	}
}

// UseReplay makes Start replay pending stream events before it reads the
// record store.
func (e *Engine) UseReplay(r Replayer) {
	e.replay = r
}

// Start loads the board and keeps it fresh until Stop. Replayed events warm
// the board first; the record store, when reachable, has the last word.
func (e *Engine) Start(ctx context.Context) error {
	if e.replay != nil {
		if err := e.warmFromStream(ctx); err != nil {
			e.logger.Info("stream replay failed, loading from record store only", "error", err)
		}
	}

	if err := e.Refresh(ctx); err != nil {
		e.logger.Error("cannot load kitchen board", "error", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.done = make(chan struct{})
	go func() {
		defer close(e.done)
		e.Run(runCtx)
	}()

	e.logger.Info("kitchen engine started", "poll_interval", e.interval.String())
	return nil
}

// Stop cancels the poll loop and waits for it. The loop only blocks on its
// own context, so the wait is bounded even when ctx is already done.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel == nil {
		return nil
	}
	e.cancel()
	<-e.done
	return nil
}

func (e *Engine) warmFromStream(ctx context.Context) error {
	messages, err := e.replay.Fetch(ctx, replayLimit)
	if err != nil {
		return err
	}

	applied := 0
	for _, msg := range messages {
		evt, ok, err := decodeOrderEvent(msg.Data)
		if err != nil {
			e.logger.Error("skipping unreadable replayed event", "sequence", msg.Sequence, "error", err)
			continue
		}
		if !ok {
			continue
		}
		e.Apply(evt)
		applied++
	}

	e.logger.Info("kitchen board warmed from stream", "events", len(messages), "applied", applied)
	return nil
}

// Run refreshes the board on every tick until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := e.Refresh(ctx); err != nil && ctx.Err() == nil {
				e.logger.Error("kitchen refresh failed", "error", err)
			}
		}
	}
}

// Refresh replaces the board with the open orders held by the record store.
// Orders already on the board keep their arrival sequence.
func (e *Engine) Refresh(ctx context.Context) error {
	orders, err := e.store.ListOrders(ctx, orderstatus.Active)
	if err != nil {
		return err
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})

	e.mu.Lock()
	defer e.mu.Unlock()

	next := make(map[uuid.UUID]*entry, len(orders))
	for _, o := range orders {
		if !orderstatus.IsActive(o.Status) {
			continue
		}
		next[o.ID] = &entry{order: o.Clone(), seq: e.seqForLocked(o.ID)}
	}
	e.orders = next
	e.version++

	e.logger.Debug("kitchen board refreshed", "orders", len(next))
	return nil
}

// Advance moves an order one step forward in the kitchen flow.
func (e *Engine) Advance(ctx context.Context, id uuid.UUID) (Outcome, error) {
	current, ok := e.status(id)
	if !ok {
		return Outcome{}, nil
	}
	next, ok := orderstatus.Forward(current)
	if !ok {
		return Outcome{}, nil
	}
	return e.Transition(ctx, id, next.Name)
}

// Revert moves an order one step back, for corrections.
func (e *Engine) Revert(ctx context.Context, id uuid.UUID) (Outcome, error) {
	current, ok := e.status(id)
	if !ok {
		return Outcome{}, nil
	}
	prev, ok := orderstatus.Backward(current)
	if !ok {
		return Outcome{}, nil
	}
	return e.Transition(ctx, id, prev.Name)
}

// Transition applies the change to the board first and then asks the record
// store to do the same. Unknown orders and moves outside the kitchen graph
// are ignored. When the store fails the board goes back to how it was; when
// it reports a conflict the board is reloaded instead.
func (e *Engine) Transition(ctx context.Context, id uuid.UUID, target string) (Outcome, error) {
	status, ok := orderstatus.Parse(target)
	if !ok {
		return Outcome{}, nil
	}

	e.mu.Lock()
	en, ok := e.orders[id]
	if !ok || !orderstatus.KitchenTransition(en.order.Status, status.Name) {
		e.mu.Unlock()
		return Outcome{}, nil
	}

	before := e.copyLocked()
	previous := en.order.Status
	en.order.Status = status.Name
	e.version++
	applied := e.version
	tableNumber := en.order.TableNumber
	e.mu.Unlock()

	updated, err := e.store.UpdateOrderStatus(ctx, id, status.Name, previous)
	if err == nil {
		e.mu.Lock()
		if en, ok := e.orders[id]; ok {
			seq := en.seq
			e.orders[id] = &entry{order: updated.Clone(), seq: seq}
			e.version++
		}
		e.mu.Unlock()

		e.logger.Info("order moved", "order_id", id.String(), "from", previous, "to", status.Name)
		order := updated.Clone()
		return Outcome{Applied: true, Order: &order}, nil
	}

	if errors.Is(err, restaurant.ErrConflict) {
		e.logger.Info("order changed elsewhere, reloading board", "order_id", id.String(), "error", err)
		if refreshErr := e.Refresh(ctx); refreshErr != nil {
			e.logger.Error("cannot reload board after conflict", "error", refreshErr)
			e.restore(before, applied, id, previous)
			if updated != nil {
				e.apply(updated.Clone())
			}
		}
		e.notifier.Notify(restaurant.NewNotice(restaurant.LevelWarning, restaurant.KindConflict,
			fmt.Sprintf("Order for table %d was changed elsewhere, board reloaded", tableNumber)))
		out := Outcome{Conflict: true}
		if order, ok := e.order(id); ok {
			out.Order = &order
		}
		return out, err
	}

	e.restore(before, applied, id, previous)
	e.logger.Error("cannot move order", "order_id", id.String(), "to", status.Name, "error", err)
	e.notifier.Notify(restaurant.NewNotice(restaurant.LevelError, restaurant.KindNetwork,
		fmt.Sprintf("Could not move order for table %d, change undone", tableNumber)))

	out := Outcome{RolledBack: true}
	if order, ok := e.order(id); ok {
		out.Order = &order
	}
	return out, err
}

// restore puts back the board captured before a transition. If the board
// changed since the transition was applied only that order is put back, so
// unrelated updates are not lost.
func (e *Engine) restore(before map[uuid.UUID]*entry, applied uint64, id uuid.UUID, previous string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.version == applied {
		e.orders = before
		e.version++
		return
	}

	if en, ok := e.orders[id]; ok {
		en.order.Status = previous
		e.version++
	}
}

// Apply folds a pushed order event into the board. Closed orders leave it.
func (e *Engine) Apply(evt event.OrderEvent) {
	id, err := uuid.Parse(evt.OrderID)
	if err != nil {
		e.logger.Error("order event with invalid id", "order_id", evt.OrderID)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !orderstatus.IsActive(evt.Status) {
		if _, ok := e.orders[id]; ok {
			delete(e.orders, id)
			e.version++
		}
		return
	}

	en, ok := e.orders[id]
	if !ok {
		tableID, _ := uuid.Parse(evt.TableID)
		en = &entry{
			order: restaurant.Order{
				ID:        id,
				TableID:   tableID,
				CreatedAt: evt.CreatedAt,
			},
			seq: e.nextSeqLocked(),
		}
		e.orders[id] = en
	}

	en.order.Status = evt.Status
	if evt.TableNumber != 0 {
		en.order.TableNumber = evt.TableNumber
	}
	if evt.Note != "" {
		en.order.Note = evt.Note
	}
	if len(evt.Items) > 0 {
		items := make([]restaurant.LineItem, 0, len(evt.Items))
		for _, line := range evt.Items {
			dishID, _ := uuid.Parse(line.DishID)
			items = append(items, restaurant.LineItem{
				DishID:    dishID,
				Name:      line.Name,
				UnitPrice: line.UnitPrice,
				Quantity:  line.Quantity,
			})
		}
		en.order.Items = items
	}
	en.order.UpdatedAt = evt.OccurredAt
	e.version++
}

func (e *Engine) apply(order restaurant.Order) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !orderstatus.IsActive(order.Status) {
		delete(e.orders, order.ID)
		e.version++
		return
	}

	e.orders[order.ID] = &entry{order: order, seq: e.seqForLocked(order.ID)}
	e.version++
}

// Snapshot returns a deep copy of every open order in board order.
func (e *Engine) Snapshot() []restaurant.Order {
	e.mu.RLock()
	entries := make([]entry, 0, len(e.orders))
	for _, en := range e.orders {
		entries = append(entries, entry{order: en.order.Clone(), seq: en.seq})
	}
	e.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.order.CreatedAt.Equal(b.order.CreatedAt) {
			return a.order.CreatedAt.Before(b.order.CreatedAt)
		}
		return a.seq < b.seq
	})

	orders := make([]restaurant.Order, len(entries))
	for i := range entries {
		orders[i] = entries[i].order
	}
	return orders
}

func (e *Engine) status(id uuid.UUID) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	en, ok := e.orders[id]
	if !ok {
		return "", false
	}
	return en.order.Status, true
}

func (e *Engine) order(id uuid.UUID) (restaurant.Order, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	en, ok := e.orders[id]
	if !ok {
		return restaurant.Order{}, false
	}
	return en.order.Clone(), true
}

func (e *Engine) copyLocked() map[uuid.UUID]*entry {
	c := make(map[uuid.UUID]*entry, len(e.orders))
	for id, en := range e.orders {
		c[id] = &entry{order: en.order.Clone(), seq: en.seq}
	}
	return c
}

// seqForLocked keeps the arrival sequence of a known order.
func (e *Engine) seqForLocked(id uuid.UUID) uint64 {
	if en, ok := e.orders[id]; ok {
		return en.seq
	}
	return e.nextSeqLocked()
}

func (e *Engine) nextSeqLocked() uint64 {
	e.seq++
	return e.seq
}
