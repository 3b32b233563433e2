package restaurant

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestTableIsOccupied(t *testing.T) {
	tests := []struct {
		occupancy string
		want      bool
	}{
		{occupancy: "OCCUPIED", want: true},
		{occupancy: "occupied", want: true},
		{occupancy: "AVAILABLE", want: false},
		{occupancy: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.occupancy, func(t *testing.T) {
			if got := (Table{Occupancy: tt.occupancy}).IsOccupied(); got != tt.want {
				t.Errorf("IsOccupied() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrderBaseCost(t *testing.T) {
	order := Order{Items: []LineItem{
		{Name: "Roll", UnitPrice: 4.50, Quantity: 2},
		{Name: "Soup", UnitPrice: 3.00, Quantity: 1},
	}}

	if got := order.BaseCost().StringFixed(2); got != "12.00" {
		t.Errorf("BaseCost() = %s, want 12.00", got)
	}
}

func TestOrderClone(t *testing.T) {
	order := Order{Status: "READY", Items: []LineItem{{Name: "Roll", Quantity: 1}}}
	c := order.Clone()
	c.Items[0].Quantity = 5
	c.Status = "CLOSED"

	if order.Items[0].Quantity != 1 || order.Status != "READY" {
		t.Errorf("clone shares state with original: %+v", order)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	cause := errors.New("connection refused")
	netErr := fmt.Errorf("submit: %w", &NetworkError{Op: "create order", Err: cause})

	if !IsNetwork(netErr) {
		t.Error("IsNetwork() = false for wrapped NetworkError")
	}
	if !errors.Is(netErr, cause) {
		t.Error("NetworkError does not unwrap to its cause")
	}
	if IsValidation(netErr) {
		t.Error("IsValidation() = true for NetworkError")
	}

	ve := NewValidationError("reference", "reference incomplete")
	if !IsValidation(ve) {
		t.Error("IsValidation() = false for ValidationError")
	}
	if ve.Error() != "reference: reference incomplete" {
		t.Errorf("Error() = %q", ve.Error())
	}
	if got := (&ValidationError{Reason: "cart is empty"}).Error(); got != "cart is empty" {
		t.Errorf("Error() without field = %q", got)
	}

	pe := &ParseError{Key: "cart", Err: cause}
	if !errors.Is(pe, cause) {
		t.Error("ParseError does not unwrap to its cause")
	}
}

func TestNoticeExpiry(t *testing.T) {
	n := NewNotice(LevelError, KindNetwork, "cannot reach kitchen")

	if n.Expired(n.CreatedAt) {
		t.Error("notice expired at creation")
	}
	if !n.Expired(n.CreatedAt.Add(DefaultNoticeTTL)) {
		t.Error("notice still visible after its TTL")
	}
	if n.ExpiresAt().Sub(n.CreatedAt) != 5*time.Second {
		t.Errorf("TTL = %v, want 5s", n.TTL)
	}
}

func TestNotifierFunc(t *testing.T) {
	var got []Notice
	notifier := NotifierFunc(func(n Notice) { got = append(got, n) })

	notifier.Notify(NewNotice(LevelInfo, KindSuccess, "ok"))
	DiscardNotices.Notify(NewNotice(LevelInfo, KindSuccess, "dropped"))

	if len(got) != 1 || got[0].Message != "ok" {
		t.Errorf("notices = %v", got)
	}
}
