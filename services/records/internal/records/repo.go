package records

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrConflict reports a fenced write whose expected prior state no
	// longer matches the stored one.
	ErrConflict = errors.New("conflict with current state")
	// ErrDuplicate reports a create for an identity that already exists.
	ErrDuplicate = errors.New("already exists")
	ErrNotFound  = errors.New("not found")

	ErrInvalidTransition = errors.New("invalid status transition")
)

type TableRepo interface {
	Create(ctx context.Context, table *Table) error
	Get(ctx context.Context, id uuid.UUID) (*Table, error)
	GetByNumber(ctx context.Context, number int) (*Table, error)
	List(ctx context.Context) ([]*Table, error)
	ListByOccupancy(ctx context.Context, occupancy string) ([]*Table, error)
	// SetOccupancy writes occupancy. When expected is not empty the write
	// only happens if the stored occupancy equals expected.
	SetOccupancy(ctx context.Context, id uuid.UUID, occupancy, expected string) (*Table, error)
}

type MenuRepo interface {
	CreateCategory(ctx context.Context, category *Category) error
	ListCategories(ctx context.Context) ([]*Category, error)
	GetCategoryByName(ctx context.Context, name string) (*Category, error)
	CreateDish(ctx context.Context, dish *Dish) error
	GetDish(ctx context.Context, id uuid.UUID) (*Dish, error)
	ListDishes(ctx context.Context, filter DishFilter) ([]*Dish, error)
}

type DishFilter struct {
	CategoryID    *uuid.UUID
	AvailableOnly bool
}

type OrderRepo interface {
	Create(ctx context.Context, order *Order) error
	Get(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
	ListByStatus(ctx context.Context, statuses ...string) ([]*Order, error)
	ListByTable(ctx context.Context, tableID uuid.UUID) ([]*Order, error)
	// UpdateStatus moves the order to status only if its stored status is
	// one of expected. It returns the updated order.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, expected ...string) (*Order, error)
}

type InvoiceRepo interface {
	Create(ctx context.Context, invoice *Invoice) error
	Get(ctx context.Context, id uuid.UUID) (*Invoice, error)
	GetByOrder(ctx context.Context, orderID uuid.UUID) (*Invoice, error)
	List(ctx context.Context) ([]*Invoice, error)
	Save(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	NextNumber(ctx context.Context) (int64, error)
}
