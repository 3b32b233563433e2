package remote

import (
	"context"
	"fmt"
	"net/url"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
)

type orderStatusRequest struct {
	Status         string `json:"status"`
	ExpectedStatus string `json:"expected_status,omitempty"`
}

// OrderDataAccess centralizes decoding of order responses.
type OrderDataAccess struct {
	client *apt.ServiceClient
}

func NewOrderDataAccess(client *apt.ServiceClient) *OrderDataAccess {
	return &OrderDataAccess{client: client}
}

// ListOrders returns orders matching a status filter: a status name, a comma
// separated list, "active" or "preparable". An empty filter lists all.
func (da *OrderDataAccess) ListOrders(ctx context.Context, status string) ([]restaurant.Order, error) {
	if da == nil || da.client == nil {
		return nil, networkError("list orders", errNotConfigured)
	}

	path := "/orders"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}

	resp, err := da.client.Request(ctx, "GET", path, nil)
	if err != nil {
		return nil, networkError("list orders", err)
	}

	var orders []restaurant.Order
	if err := decodeSuccessResponse(resp, &orders); err != nil {
		return nil, networkError("decode orders", err)
	}

	return orders, nil
}

func (da *OrderDataAccess) GetOrder(ctx context.Context, id uuid.UUID) (*restaurant.Order, error) {
	if da == nil || da.client == nil {
		return nil, networkError("get order", errNotConfigured)
	}

	resp, err := da.client.Get(ctx, "orders", id.String())
	if err != nil {
		return nil, networkError("get order", err)
	}

	var order restaurant.Order
	if err := decodeSuccessResponse(resp, &order); err != nil {
		return nil, networkError("decode order", err)
	}

	return &order, nil
}

func (da *OrderDataAccess) CreateOrder(ctx context.Context, draft restaurant.OrderDraft) (*restaurant.Order, error) {
	if da == nil || da.client == nil {
		return nil, networkError("create order", errNotConfigured)
	}

	resp, err := da.client.Create(ctx, "orders", draft)
	if err != nil {
		if isConflict(err) {
			return nil, fmt.Errorf("order %s: %w", draft.ID.String(), restaurant.ErrDuplicateSubmission)
		}
		return nil, networkError("create order", err)
	}

	var order restaurant.Order
	if err := decodeSuccessResponse(resp, &order); err != nil {
		return nil, networkError("decode order", err)
	}

	return &order, nil
}

// UpdateOrderStatus moves an order, fenced on the status the caller last saw.
// When the write fails the order is read back: a different status means the
// caller lost a race and gets ErrConflict.
func (da *OrderDataAccess) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status, expected string) (*restaurant.Order, error) {
	if da == nil || da.client == nil {
		return nil, networkError("update order", errNotConfigured)
	}

	path := fmt.Sprintf("/orders/%s", id.String())
	resp, err := da.client.Request(ctx, "PATCH", path, orderStatusRequest{
		Status:         status,
		ExpectedStatus: expected,
	})
	if err != nil {
		if expected != "" {
			if current, getErr := da.GetOrder(ctx, id); getErr == nil && current.Status != expected {
				return current, fmt.Errorf("order %s is %s: %w", id.String(), current.Status, restaurant.ErrConflict)
			}
		}
		return nil, networkError("update order", err)
	}

	var order restaurant.Order
	if err := decodeSuccessResponse(resp, &order); err != nil {
		return nil, networkError("decode order", err)
	}

	return &order, nil
}
