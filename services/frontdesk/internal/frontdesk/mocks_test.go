package frontdesk

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/pkg/enums/orderstatus"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
)

var errNotFound = errors.New("404 not found")

// MockRecords stands in for the record store behind every component.
type MockRecords struct {
	mu         sync.Mutex
	tables     map[uuid.UUID]*restaurant.Table
	dishes     map[uuid.UUID]restaurant.Dish
	categories []restaurant.Category
	orders     map[uuid.UUID]*restaurant.Order
	invoices   []restaurant.Invoice

	CreateOrderFunc func(ctx context.Context, draft restaurant.OrderDraft) (*restaurant.Order, error)
}

func NewMockRecords() *MockRecords {
	return &MockRecords{
		tables: make(map[uuid.UUID]*restaurant.Table),
		dishes: make(map[uuid.UUID]restaurant.Dish),
		orders: make(map[uuid.UUID]*restaurant.Order),
	}
}

func (m *MockRecords) AddTable(number int) restaurant.Table {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := restaurant.Table{ID: uuid.New(), Number: number, Capacity: 4, Occupancy: "AVAILABLE"}
	m.tables[t.ID] = &t
	return t
}

func (m *MockRecords) AddDish(name string, price float64, available bool) restaurant.Dish {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := restaurant.Dish{ID: uuid.New(), Name: name, Price: price, Available: available}
	m.dishes[d.ID] = d
	return d
}

func (m *MockRecords) AddOrder(table restaurant.Table, status string, price float64) restaurant.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := restaurant.Order{
		ID:          uuid.New(),
		TableID:     table.ID,
		TableNumber: table.Number,
		Status:      status,
		Items:       []restaurant.LineItem{{DishID: uuid.New(), Name: "Menu", UnitPrice: price, Quantity: 1}},
		CreatedAt:   time.Now(),
	}
	m.orders[o.ID] = &o
	return o
}

func (m *MockRecords) Occupancy(id uuid.UUID) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tables[id].Occupancy
}

func (m *MockRecords) OrderStatus(id uuid.UUID) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orders[id].Status
}

func (m *MockRecords) OrderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

func (m *MockRecords) ListTables(ctx context.Context) ([]restaurant.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]restaurant.Table, 0, len(m.tables))
	for _, t := range m.tables {
		result = append(result, *t)
	}
	return result, nil
}

func (m *MockRecords) GetTable(ctx context.Context, id uuid.UUID) (*restaurant.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[id]
	if !ok {
		return nil, &restaurant.NetworkError{Op: "get table", Err: errNotFound}
	}
	c := *t
	return &c, nil
}

func (m *MockRecords) SetOccupancy(ctx context.Context, id uuid.UUID, occupancy, expected string) (*restaurant.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[id]
	if !ok {
		return nil, &restaurant.NetworkError{Op: "update table", Err: errNotFound}
	}
	if expected != "" && t.Occupancy != expected {
		c := *t
		return &c, restaurant.ErrConflict
	}
	t.Occupancy = occupancy
	c := *t
	return &c, nil
}

func (m *MockRecords) ListCategories(ctx context.Context) ([]restaurant.Category, error) {
	return m.categories, nil
}

func (m *MockRecords) ListDishes(ctx context.Context, categoryID uuid.UUID, availableOnly bool) ([]restaurant.Dish, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []restaurant.Dish{}
	for _, d := range m.dishes {
		if availableOnly && !d.Available {
			continue
		}
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *MockRecords) GetDish(ctx context.Context, id uuid.UUID) (*restaurant.Dish, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.dishes[id]
	if !ok {
		return nil, &restaurant.NetworkError{Op: "get dish", Err: errNotFound}
	}
	return &d, nil
}

func (m *MockRecords) CreateOrder(ctx context.Context, draft restaurant.OrderDraft) (*restaurant.Order, error) {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, draft)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	table := m.tables[draft.TableID]
	o := restaurant.Order{
		ID:          draft.ID,
		TableID:     draft.TableID,
		TableNumber: table.Number,
		Items:       draft.Items,
		Status:      orderstatus.Statuses.Received.Name,
		Note:        draft.Note,
		CreatedAt:   time.Now(),
	}
	m.orders[o.ID] = &o
	c := o.Clone()
	return &c, nil
}

func (m *MockRecords) GetOrder(ctx context.Context, id uuid.UUID) (*restaurant.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, &restaurant.NetworkError{Op: "get order", Err: errNotFound}
	}
	c := o.Clone()
	return &c, nil
}

func (m *MockRecords) ListOrders(ctx context.Context, status string) ([]restaurant.Order, error) {
	names, _ := orderstatus.Expand(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []restaurant.Order{}
	for _, o := range m.orders {
		if len(names) == 0 || contains(names, o.Status) {
			result = append(result, o.Clone())
		}
	}
	return result, nil
}

func (m *MockRecords) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status, expected string) (*restaurant.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, &restaurant.NetworkError{Op: "update order", Err: errNotFound}
	}
	if expected != "" && o.Status != expected {
		c := o.Clone()
		return &c, restaurant.ErrConflict
	}
	o.Status = status
	c := o.Clone()
	return &c, nil
}

func (m *MockRecords) CreateInvoice(ctx context.Context, draft restaurant.InvoiceDraft) (*restaurant.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[draft.OrderID]
	if !ok {
		return nil, &restaurant.NetworkError{Op: "create invoice", Err: errNotFound}
	}
	base := o.BaseCost().InexactFloat64()
	inv := restaurant.Invoice{
		ID:            uuid.New(),
		Number:        int64(len(m.invoices) + 1),
		OrderID:       o.ID,
		TableID:       o.TableID,
		BaseCost:      base,
		Tax:           draft.Tax,
		Discount:      draft.Discount,
		Total:         base + draft.Tax - draft.Discount,
		PaymentMethod: draft.PaymentMethod,
		Reference:     draft.Reference,
		Client:        draft.Client,
		Status:        "PAID",
	}
	m.invoices = append(m.invoices, inv)
	o.Status = orderstatus.Statuses.Closed.Name
	return &inv, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
