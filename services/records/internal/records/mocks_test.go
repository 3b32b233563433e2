package records

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MockPublisher is a mock implementation of events.Publisher for testing
type MockPublisher struct {
	mu          sync.Mutex
	Published   map[string][][]byte
	PublishFunc func(ctx context.Context, topic string, msg []byte) error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Published: make(map[string][][]byte)}
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, msg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published[topic] = append(m.Published[topic], msg)
	return nil
}

func (m *MockPublisher) Count(topic string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Published[topic])
}

// MockTableRepo is a mock implementation of TableRepo for testing
type MockTableRepo struct {
	mu               sync.RWMutex
	tables           map[uuid.UUID]*Table
	SetOccupancyFunc func(ctx context.Context, id uuid.UUID, occupancy, expected string) (*Table, error)
}

func NewMockTableRepo() *MockTableRepo {
	return &MockTableRepo{tables: make(map[uuid.UUID]*Table)}
}

func (m *MockTableRepo) Create(ctx context.Context, table *Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tables {
		if t.Number == table.Number {
			return fmt.Errorf("table %d: %w", table.Number, ErrDuplicate)
		}
	}
	m.tables[table.ID] = table
	return nil
}

func (m *MockTableRepo) Get(ctx context.Context, id uuid.UUID) (*Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tables[id]
	if !ok {
		return nil, nil
	}
	copy := *t
	return &copy, nil
}

func (m *MockTableRepo) GetByNumber(ctx context.Context, number int) (*Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.tables {
		if t.Number == number {
			copy := *t
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockTableRepo) List(ctx context.Context) ([]*Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []*Table{}
	for _, t := range m.tables {
		result = append(result, t)
	}
	return result, nil
}

func (m *MockTableRepo) ListByOccupancy(ctx context.Context, occupancy string) ([]*Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []*Table{}
	for _, t := range m.tables {
		if t.Occupancy == occupancy {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *MockTableRepo) SetOccupancy(ctx context.Context, id uuid.UUID, occupancy, expected string) (*Table, error) {
	if m.SetOccupancyFunc != nil {
		return m.SetOccupancyFunc(ctx, id, occupancy, expected)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[id]
	if !ok {
		return nil, ErrNotFound
	}
	if expected != "" && t.Occupancy != expected {
		return nil, ErrConflict
	}
	t.Occupancy = occupancy
	copy := *t
	return &copy, nil
}

// MockMenuRepo is a mock implementation of MenuRepo for testing
type MockMenuRepo struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]*Category
	dishes     map[uuid.UUID]*Dish
}

func NewMockMenuRepo() *MockMenuRepo {
	return &MockMenuRepo{
		categories: make(map[uuid.UUID]*Category),
		dishes:     make(map[uuid.UUID]*Dish),
	}
}

func (m *MockMenuRepo) CreateCategory(ctx context.Context, category *Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[category.ID] = category
	return nil
}

func (m *MockMenuRepo) ListCategories(ctx context.Context) ([]*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []*Category{}
	for _, c := range m.categories {
		result = append(result, c)
	}
	return result, nil
}

func (m *MockMenuRepo) GetCategoryByName(ctx context.Context, name string) (*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (m *MockMenuRepo) CreateDish(ctx context.Context, dish *Dish) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dishes[dish.ID] = dish
	return nil
}

func (m *MockMenuRepo) GetDish(ctx context.Context, id uuid.UUID) (*Dish, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dishes[id], nil
}

func (m *MockMenuRepo) ListDishes(ctx context.Context, filter DishFilter) ([]*Dish, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []*Dish{}
	for _, d := range m.dishes {
		if filter.CategoryID != nil && d.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.AvailableOnly && !d.Available {
			continue
		}
		result = append(result, d)
	}
	return result, nil
}

// MockOrderRepo is a mock implementation of OrderRepo for testing
type MockOrderRepo struct {
	mu               sync.RWMutex
	orders           map[uuid.UUID]*Order
	CreateFunc       func(ctx context.Context, order *Order) error
	UpdateStatusFunc func(ctx context.Context, id uuid.UUID, status string, expected ...string) (*Order, error)
}

func NewMockOrderRepo() *MockOrderRepo {
	return &MockOrderRepo{orders: make(map[uuid.UUID]*Order)}
}

func (m *MockOrderRepo) Create(ctx context.Context, order *Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, order)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.orders[order.ID]; exists {
		return ErrDuplicate
	}
	m.orders[order.ID] = order
	return nil
}

func (m *MockOrderRepo) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	copy := *o
	return &copy, nil
}

func (m *MockOrderRepo) List(ctx context.Context) ([]*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []*Order{}
	for _, o := range m.orders {
		result = append(result, o)
	}
	return result, nil
}

func (m *MockOrderRepo) ListByStatus(ctx context.Context, statuses ...string) ([]*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []*Order{}
	for _, o := range m.orders {
		for _, s := range statuses {
			if o.Status == s {
				result = append(result, o)
				break
			}
		}
	}
	return result, nil
}

func (m *MockOrderRepo) ListByTable(ctx context.Context, tableID uuid.UUID) ([]*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []*Order{}
	for _, o := range m.orders {
		if o.TableID == tableID {
			result = append(result, o)
		}
	}
	return result, nil
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, expected ...string) (*Order, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status, expected...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	if len(expected) > 0 {
		matched := false
		for _, s := range expected {
			if o.Status == s {
				matched = true
				break
			}
		}
		if !matched {
			return nil, ErrConflict
		}
	}
	o.Status = status
	copy := *o
	return &copy, nil
}

// MockInvoiceRepo is a mock implementation of InvoiceRepo for testing
type MockInvoiceRepo struct {
	mu       sync.RWMutex
	invoices map[uuid.UUID]*Invoice
	seq      int64
	Deleted  []uuid.UUID
}

func NewMockInvoiceRepo() *MockInvoiceRepo {
	return &MockInvoiceRepo{invoices: make(map[uuid.UUID]*Invoice)}
}

func (m *MockInvoiceRepo) Create(ctx context.Context, invoice *Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, inv := range m.invoices {
		if inv.OrderID == invoice.OrderID {
			return ErrDuplicate
		}
	}
	m.invoices[invoice.ID] = invoice
	return nil
}

func (m *MockInvoiceRepo) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.invoices[id], nil
}

func (m *MockInvoiceRepo) GetByOrder(ctx context.Context, orderID uuid.UUID) (*Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, inv := range m.invoices {
		if inv.OrderID == orderID {
			return inv, nil
		}
	}
	return nil, nil
}

func (m *MockInvoiceRepo) List(ctx context.Context) ([]*Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []*Invoice{}
	for _, inv := range m.invoices {
		result = append(result, inv)
	}
	return result, nil
}

func (m *MockInvoiceRepo) Save(ctx context.Context, invoice *Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.invoices[invoice.ID]; !ok {
		return ErrNotFound
	}
	m.invoices[invoice.ID] = invoice
	return nil
}

func (m *MockInvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.invoices, id)
	m.Deleted = append(m.Deleted, id)
	return nil
}

func (m *MockInvoiceRepo) NextNumber(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return m.seq, nil
}
