package records

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestValidateInvoiceCreate(t *testing.T) {
	orderID := uuid.New()

	tests := []struct {
		name      string
		req       InvoiceCreateRequest
		wantError string
	}{
		{
			name: "cash",
			req:  InvoiceCreateRequest{OrderID: orderID, PaymentMethod: "CASH"},
		},
		{
			name: "cardWithReference",
			req:  InvoiceCreateRequest{OrderID: orderID, PaymentMethod: "CARD", Reference: "004512"},
		},
		{
			name: "referenceDigitsAcrossSeparators",
			req:  InvoiceCreateRequest{OrderID: orderID, PaymentMethod: "BANK_TRANSFER", Reference: "12-34-56"},
		},
		{
			name:      "referenceTooShort",
			req:       InvoiceCreateRequest{OrderID: orderID, PaymentMethod: "WALLET_TRANSFER", Reference: "12345"},
			wantError: "reference incomplete",
		},
		{
			name:      "referenceNonASCIIDigits",
			req:       InvoiceCreateRequest{OrderID: orderID, PaymentMethod: "CARD", Reference: "١٢٣٤٥٦"},
			wantError: "reference incomplete",
		},
		{
			name:      "missingOrder",
			req:       InvoiceCreateRequest{PaymentMethod: "CASH"},
			wantError: "order_id is required",
		},
		{
			name:      "negativeTax",
			req:       InvoiceCreateRequest{OrderID: orderID, PaymentMethod: "CASH", Tax: -1},
			wantError: "tax cannot be negative",
		},
		{
			name:      "formalWithoutDocument",
			req:       InvoiceCreateRequest{OrderID: orderID, PaymentMethod: "CASH", Client: &Client{Name: "Ana"}},
			wantError: "client id_document is required",
		},
		{
			name: "formalComplete",
			req:  InvoiceCreateRequest{OrderID: orderID, PaymentMethod: "CASH", Client: &Client{Name: "Ana", IDDocument: "V-1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateInvoiceCreate(context.Background(), tt.req)
			if tt.wantError == "" {
				if len(errs) != 0 {
					t.Errorf("unexpected errors: %v", errs)
				}
				return
			}
			if !strings.Contains(strings.Join(errs, "; "), tt.wantError) {
				t.Errorf("errors = %v, want %q", errs, tt.wantError)
			}
		})
	}
}

func TestValidateOrderStatus(t *testing.T) {
	id := uuid.New()

	if errs := ValidateOrderStatus(context.Background(), id, OrderStatusRequest{Status: "in_preparation"}); len(errs) != 0 {
		t.Errorf("lowercase status rejected: %v", errs)
	}
	if errs := ValidateOrderStatus(context.Background(), uuid.Nil, OrderStatusRequest{Status: "READY"}); len(errs) == 0 {
		t.Error("nil id accepted")
	}
	if errs := ValidateOrderStatus(context.Background(), id, OrderStatusRequest{Status: "READY", ExpectedStatus: "LATE"}); len(errs) == 0 {
		t.Error("unknown expected status accepted")
	}
}

func TestCountDigits(t *testing.T) {
	tests := map[string]int{
		"":          0,
		"123456":    6,
		"ref 12-34": 4,
		"abc":       0,
		"١٢٣٤٥٦":    0,
		"１２３４５６":    0,
	}
	for in, want := range tests {
		if got := countDigits(in); got != want {
			t.Errorf("countDigits(%q) = %d, want %d", in, got, want)
		}
	}
}
