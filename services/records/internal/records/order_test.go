package records

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/pkg/enums/orderstatus"
)

func TestOrderBaseCost(t *testing.T) {
	tests := []struct {
		name  string
		items []LineItem
		want  string
	}{
		{name: "empty", items: nil, want: "0.00"},
		{
			name:  "singleLine",
			items: []LineItem{{UnitPrice: 4.50, Quantity: 2}},
			want:  "9.00",
		},
		{
			name: "centsDoNotDrift",
			items: []LineItem{
				{UnitPrice: 0.10, Quantity: 3},
				{UnitPrice: 0.20, Quantity: 1},
			},
			want: "0.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &Order{Items: tt.items}
			if got := order.BaseCost().StringFixed(2); got != tt.want {
				t.Errorf("BaseCost() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestOrderMoveTo(t *testing.T) {
	s := orderstatus.Statuses

	tests := []struct {
		name    string
		from    string
		to      string
		wantErr bool
	}{
		{name: "receivedToPreparation", from: s.Received.Name, to: s.InPreparation.Name},
		{name: "readyToDelivered", from: s.Ready.Name, to: s.Delivered.Name},
		{name: "deliveredToClosed", from: s.Delivered.Name, to: s.Closed.Name},
		{name: "receivedToReady", from: s.Received.Name, to: s.Ready.Name, wantErr: true},
		{name: "closedToReceived", from: s.Closed.Name, to: s.Received.Name, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := NewOrder()
			order.Status = tt.from

			err := order.MoveTo(tt.to)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Fatalf("MoveTo() error = %v, want ErrInvalidTransition", err)
				}
				if order.Status != tt.from {
					t.Errorf("status changed to %s on rejected move", order.Status)
				}
				return
			}
			if err != nil {
				t.Fatalf("MoveTo() unexpected error: %v", err)
			}
			if order.Status != tt.to {
				t.Errorf("status = %s, want %s", order.Status, tt.to)
			}
		})
	}
}

func TestNewOrder(t *testing.T) {
	order := NewOrder()
	if order.ID == uuid.Nil {
		t.Error("expected generated id")
	}
	if order.Status != orderstatus.Statuses.Received.Name {
		t.Errorf("status = %s, want RECEIVED", order.Status)
	}
	if order.IsBillable() {
		t.Error("new order should not be billable")
	}
}
