package billing

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
)

type MockOrderStore struct {
	mu                    sync.Mutex
	Orders                []restaurant.Order
	Filters               []string
	ListOrdersFunc        func(ctx context.Context, status string) ([]restaurant.Order, error)
	UpdateOrderStatusFunc func(ctx context.Context, id uuid.UUID, status, expected string) (*restaurant.Order, error)
}

func (m *MockOrderStore) ListOrders(ctx context.Context, status string) ([]restaurant.Order, error) {
	m.mu.Lock()
	m.Filters = append(m.Filters, status)
	m.mu.Unlock()
	if m.ListOrdersFunc != nil {
		return m.ListOrdersFunc(ctx, status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]restaurant.Order, len(m.Orders))
	copy(result, m.Orders)
	return result, nil
}

func (m *MockOrderStore) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status, expected string) (*restaurant.Order, error) {
	if m.UpdateOrderStatusFunc != nil {
		return m.UpdateOrderStatusFunc(ctx, id, status, expected)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Orders {
		if m.Orders[i].ID == id {
			if expected != "" && m.Orders[i].Status != expected {
				current := m.Orders[i]
				return &current, restaurant.ErrConflict
			}
			m.Orders[i].Status = status
			updated := m.Orders[i]
			return &updated, nil
		}
	}
	return nil, &restaurant.NetworkError{Op: "update order"}
}

func (m *MockOrderStore) ListCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Filters)
}

type MockInvoiceStore struct {
	Requests          []restaurant.InvoiceDraft
	CreateInvoiceFunc func(ctx context.Context, draft restaurant.InvoiceDraft) (*restaurant.Invoice, error)
}

func (m *MockInvoiceStore) CreateInvoice(ctx context.Context, draft restaurant.InvoiceDraft) (*restaurant.Invoice, error) {
	m.Requests = append(m.Requests, draft)
	if m.CreateInvoiceFunc != nil {
		return m.CreateInvoiceFunc(ctx, draft)
	}
	return &restaurant.Invoice{
		ID:            uuid.New(),
		Number:        int64(len(m.Requests)),
		OrderID:       draft.OrderID,
		Tax:           draft.Tax,
		Discount:      draft.Discount,
		PaymentMethod: draft.PaymentMethod,
		Reference:     draft.Reference,
		Client:        draft.Client,
		Status:        "PAID",
	}, nil
}

type MockReleaser struct {
	Released    []uuid.UUID
	ReleaseFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *MockReleaser) Release(ctx context.Context, id uuid.UUID) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, id)
	}
	m.Released = append(m.Released, id)
	return nil
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
