package remote

import (
	"context"
	"net/url"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
)

// MenuDataAccess reads the dish catalog. It is read only.
type MenuDataAccess struct {
	client *apt.ServiceClient
}

func NewMenuDataAccess(client *apt.ServiceClient) *MenuDataAccess {
	return &MenuDataAccess{client: client}
}

func (da *MenuDataAccess) ListCategories(ctx context.Context) ([]restaurant.Category, error) {
	if da == nil || da.client == nil {
		return nil, networkError("list categories", errNotConfigured)
	}

	resp, err := da.client.List(ctx, "categories")
	if err != nil {
		return nil, networkError("list categories", err)
	}

	var categories []restaurant.Category
	if err := decodeSuccessResponse(resp, &categories); err != nil {
		return nil, networkError("decode categories", err)
	}

	return categories, nil
}

func (da *MenuDataAccess) ListDishes(ctx context.Context, categoryID uuid.UUID, availableOnly bool) ([]restaurant.Dish, error) {
	if da == nil || da.client == nil {
		return nil, networkError("list dishes", errNotConfigured)
	}

	query := url.Values{}
	if categoryID != uuid.Nil {
		query.Set("category", categoryID.String())
	}
	if availableOnly {
		query.Set("available", "true")
	}

	path := "/dishes"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	resp, err := da.client.Request(ctx, "GET", path, nil)
	if err != nil {
		return nil, networkError("list dishes", err)
	}

	var dishes []restaurant.Dish
	if err := decodeSuccessResponse(resp, &dishes); err != nil {
		return nil, networkError("decode dishes", err)
	}

	return dishes, nil
}

func (da *MenuDataAccess) GetDish(ctx context.Context, id uuid.UUID) (*restaurant.Dish, error) {
	if da == nil || da.client == nil {
		return nil, networkError("get dish", errNotConfigured)
	}

	resp, err := da.client.Get(ctx, "dishes", id.String())
	if err != nil {
		return nil, networkError("get dish", err)
	}

	var dish restaurant.Dish
	if err := decodeSuccessResponse(resp, &dish); err != nil {
		return nil, networkError("decode dish", err)
	}

	return &dish, nil
}
