package remote

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
)

type occupancyRequest struct {
	Occupancy         string `json:"occupancy"`
	ExpectedOccupancy string `json:"expected_occupancy,omitempty"`
}

// TableDataAccess centralizes decoding of table responses.
type TableDataAccess struct {
	client *apt.ServiceClient
}

func NewTableDataAccess(client *apt.ServiceClient) *TableDataAccess {
	return &TableDataAccess{client: client}
}

func (da *TableDataAccess) ListTables(ctx context.Context) ([]restaurant.Table, error) {
	if da == nil || da.client == nil {
		return nil, networkError("list tables", errNotConfigured)
	}

	resp, err := da.client.List(ctx, "tables")
	if err != nil {
		return nil, networkError("list tables", err)
	}

	var tables []restaurant.Table
	if err := decodeSuccessResponse(resp, &tables); err != nil {
		return nil, networkError("decode tables", err)
	}

	return tables, nil
}

func (da *TableDataAccess) GetTable(ctx context.Context, id uuid.UUID) (*restaurant.Table, error) {
	if da == nil || da.client == nil {
		return nil, networkError("get table", errNotConfigured)
	}

	resp, err := da.client.Get(ctx, "tables", id.String())
	if err != nil {
		return nil, networkError("get table", err)
	}

	var table restaurant.Table
	if err := decodeSuccessResponse(resp, &table); err != nil {
		return nil, networkError("decode table", err)
	}

	return &table, nil
}

// SetOccupancy writes the occupancy of a table. With a non-empty expected
// state the write is fenced; a lost fence is reported as ErrConflict after
// reading the table back.
func (da *TableDataAccess) SetOccupancy(ctx context.Context, id uuid.UUID, occupancy, expected string) (*restaurant.Table, error) {
	if da == nil || da.client == nil {
		return nil, networkError("update table", errNotConfigured)
	}

	path := fmt.Sprintf("/tables/%s", id.String())
	resp, err := da.client.Request(ctx, "PATCH", path, occupancyRequest{
		Occupancy:         occupancy,
		ExpectedOccupancy: expected,
	})
	if err != nil {
		if expected != "" {
			if current, getErr := da.GetTable(ctx, id); getErr == nil && current.Occupancy != expected {
				return current, fmt.Errorf("table %d is %s: %w", current.Number, current.Occupancy, restaurant.ErrConflict)
			}
		}
		return nil, networkError("update table", err)
	}

	var table restaurant.Table
	if err := decodeSuccessResponse(resp, &table); err != nil {
		return nil, networkError("decode table", err)
	}

	return &table, nil
}
