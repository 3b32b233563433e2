package remote

import (
	"testing"

	"github.com/appetiteclub/apt"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
)

func TestDecodeSuccessResponse(t *testing.T) {
	tests := []struct {
		name    string
		resp    *apt.SuccessResponse
		wantErr bool
	}{
		{
			name:    "nilResponse",
			resp:    nil,
			wantErr: true,
		},
		{
			name: "tableResponse",
			resp: &apt.SuccessResponse{
				Data: map[string]interface{}{
					"id":        "0b7f3c52-58c4-4b5e-9a4c-0d6a5f3f7e01",
					"number":    7,
					"occupancy": "OCCUPIED",
				},
			},
			wantErr: false,
		},
		{
			name: "wrongShape",
			resp: &apt.SuccessResponse{
				Data: []interface{}{"not", "a", "table"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var table restaurant.Table
			err := decodeSuccessResponse(tt.resp, &table)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeSuccessResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && (table.Number != 7 || !table.IsOccupied()) {
				t.Errorf("decoded table = %+v", table)
			}
		})
	}
}

func TestDecodeCollection(t *testing.T) {
	resp := &apt.SuccessResponse{
		Data: []interface{}{
			map[string]interface{}{"id": "0b7f3c52-58c4-4b5e-9a4c-0d6a5f3f7e01", "status": "READY", "items": []interface{}{
				map[string]interface{}{"name": "Roll", "unit_price": 4.5, "quantity": 2},
			}},
		},
	}

	var orders []restaurant.Order
	if err := decodeSuccessResponse(resp, &orders); err != nil {
		t.Fatalf("decodeSuccessResponse() error = %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("decoded %d orders, want 1", len(orders))
	}
	if got := orders[0].BaseCost().StringFixed(2); got != "9.00" {
		t.Errorf("base cost = %s, want 9.00", got)
	}
}
