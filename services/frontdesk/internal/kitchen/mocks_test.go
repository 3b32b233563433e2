package kitchen

import (
	"context"
	"errors"
	"sync"

	"github.com/appetiteclub/apt/events"
	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/pkg/enums/orderstatus"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
)

// MockOrderStore holds orders in memory and honours fenced status writes.
type MockOrderStore struct {
	mu                    sync.Mutex
	orders                map[uuid.UUID]*restaurant.Order
	Updates               int
	ListOrdersFunc        func(ctx context.Context, status string) ([]restaurant.Order, error)
	UpdateOrderStatusFunc func(ctx context.Context, id uuid.UUID, status, expected string) (*restaurant.Order, error)
}

func NewMockOrderStore(orders ...restaurant.Order) *MockOrderStore {
	m := &MockOrderStore{orders: make(map[uuid.UUID]*restaurant.Order)}
	for i := range orders {
		o := orders[i].Clone()
		m.orders[o.ID] = &o
	}
	return m
}

func (m *MockOrderStore) ListOrders(ctx context.Context, status string) ([]restaurant.Order, error) {
	if m.ListOrdersFunc != nil {
		return m.ListOrdersFunc(ctx, status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]restaurant.Order, 0, len(m.orders))
	for _, o := range m.orders {
		if orderstatus.IsActive(o.Status) {
			result = append(result, o.Clone())
		}
	}
	return result, nil
}

func (m *MockOrderStore) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status, expected string) (*restaurant.Order, error) {
	if m.UpdateOrderStatusFunc != nil {
		return m.UpdateOrderStatusFunc(ctx, id, status, expected)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, &restaurant.NetworkError{Op: "update order", Err: errors.New("404 not found")}
	}
	if expected != "" && o.Status != expected {
		current := o.Clone()
		return &current, restaurant.ErrConflict
	}
	m.Updates++
	o.Status = status
	updated := o.Clone()
	return &updated, nil
}

// Set changes an order behind the engine's back.
func (m *MockOrderStore) Set(id uuid.UUID, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[id].Status = status
}

type noticeRecorder struct {
	mu      sync.Mutex
	notices []restaurant.Notice
}

func (r *noticeRecorder) Notify(n restaurant.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *noticeRecorder) Kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]string, 0, len(r.notices))
	for _, n := range r.notices {
		kinds = append(kinds, n.Kind)
	}
	return kinds
}

// MockSubscriber records subscriptions and lets tests deliver messages.
type MockSubscriber struct {
	Topics   []string
	handlers map[string]events.HandlerFunc
}

func NewMockSubscriber() *MockSubscriber {
	return &MockSubscriber{handlers: make(map[string]events.HandlerFunc)}
}

func (m *MockSubscriber) Subscribe(ctx context.Context, topic string, handler events.HandlerFunc) error {
	m.Topics = append(m.Topics, topic)
	m.handlers[topic] = handler
	return nil
}

func (m *MockSubscriber) Deliver(ctx context.Context, topic string, msg []byte) error {
	return m.handlers[topic](ctx, msg)
}

// MockReplayer returns a fixed batch of stream messages.
type MockReplayer struct {
	Messages []events.StreamMessage
	Err      error
	Limits   []int
}

func (m *MockReplayer) Fetch(ctx context.Context, limit int) ([]events.StreamMessage, error) {
	m.Limits = append(m.Limits, limit)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Messages, nil
}
