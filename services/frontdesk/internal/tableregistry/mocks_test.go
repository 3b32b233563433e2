package tableregistry

import (
	"context"
	"sync"

	"github.com/appetiteclub/apt/events"
	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
)

// MockStore is an in-memory table store that honours fenced writes.
type MockStore struct {
	mu               sync.Mutex
	tables           map[uuid.UUID]*restaurant.Table
	Writes           int
	ListTablesFunc   func(ctx context.Context) ([]restaurant.Table, error)
	SetOccupancyFunc func(ctx context.Context, id uuid.UUID, occupancy, expected string) (*restaurant.Table, error)
}

func NewMockStore(tables ...restaurant.Table) *MockStore {
	m := &MockStore{tables: make(map[uuid.UUID]*restaurant.Table)}
	for i := range tables {
		t := tables[i]
		m.tables[t.ID] = &t
	}
	return m
}

func (m *MockStore) ListTables(ctx context.Context) ([]restaurant.Table, error) {
	if m.ListTablesFunc != nil {
		return m.ListTablesFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]restaurant.Table, 0, len(m.tables))
	for _, t := range m.tables {
		result = append(result, *t)
	}
	return result, nil
}

func (m *MockStore) GetTable(ctx context.Context, id uuid.UUID) (*restaurant.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[id]
	if !ok {
		return nil, &restaurant.NetworkError{Op: "get table", Err: errNotFound}
	}
	copy := *t
	return &copy, nil
}

func (m *MockStore) SetOccupancy(ctx context.Context, id uuid.UUID, occupancy, expected string) (*restaurant.Table, error) {
	if m.SetOccupancyFunc != nil {
		return m.SetOccupancyFunc(ctx, id, occupancy, expected)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[id]
	if !ok {
		return nil, &restaurant.NetworkError{Op: "update table", Err: errNotFound}
	}
	if expected != "" && t.Occupancy != expected {
		copy := *t
		return &copy, restaurant.ErrConflict
	}
	m.Writes++
	t.Occupancy = occupancy
	copy := *t
	return &copy, nil
}

func (m *MockStore) Occupancy(id uuid.UUID) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tables[id].Occupancy
}

type notFoundError struct{}

func (notFoundError) Error() string { return "404 not found" }

var errNotFound = notFoundError{}

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
