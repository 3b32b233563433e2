package records

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/pkg/enums/invoicestatus"
	"github.com/appetiteclub/frontdesk/pkg/enums/occupancy"
	"github.com/appetiteclub/frontdesk/pkg/enums/orderstatus"
	"github.com/appetiteclub/frontdesk/pkg/enums/paymentmethod"
)

// MinReferenceDigits is the number of digits a non-cash payment reference
// must carry.
const MinReferenceDigits = 6

func ValidateTableOccupancy(ctx context.Context, id uuid.UUID, req TableOccupancyRequest) []string {
	var errors []string

	if id == uuid.Nil {
		errors = append(errors, "invalid table id")
	}

	if req.Occupancy == "" && req.Occupied == nil {
		errors = append(errors, "occupancy is required")
	}

	if req.Occupancy != "" && occupancy.ByName(req.Occupancy) == nil {
		errors = append(errors, "invalid occupancy")
	}

	if req.ExpectedOccupancy != "" && occupancy.ByName(req.ExpectedOccupancy) == nil {
		errors = append(errors, "invalid expected_occupancy")
	}

	return errors
}

func ValidateOrderCreate(ctx context.Context, req OrderCreateRequest) []string {
	var errors []string

	if req.TableID == uuid.Nil {
		errors = append(errors, "table_id is required")
	}

	if len(req.Items) == 0 {
		errors = append(errors, "items are required")
	}

	for _, item := range req.Items {
		if item.DishID == uuid.Nil {
			errors = append(errors, "dish_id is required")
		}
		if item.Quantity <= 0 {
			errors = append(errors, "quantity must be greater than 0")
		}
		if item.UnitPrice < 0 {
			errors = append(errors, "unit_price cannot be negative")
		}
	}

	return errors
}

func ValidateOrderStatus(ctx context.Context, id uuid.UUID, req OrderStatusRequest) []string {
	var errors []string

	if id == uuid.Nil {
		errors = append(errors, "invalid order id")
	}

	if orderstatus.ByName(req.Status) == nil {
		errors = append(errors, "invalid status")
	}

	if req.ExpectedStatus != "" && orderstatus.ByName(req.ExpectedStatus) == nil {
		errors = append(errors, "invalid expected_status")
	}

	return errors
}

func ValidateInvoiceCreate(ctx context.Context, req InvoiceCreateRequest) []string {
	var errors []string

	if req.OrderID == uuid.Nil {
		errors = append(errors, "order_id is required")
	}

	if req.Tax < 0 {
		errors = append(errors, "tax cannot be negative")
	}

	if req.Discount < 0 {
		errors = append(errors, "discount cannot be negative")
	}

	method := paymentmethod.ByName(req.PaymentMethod)
	if method == nil {
		errors = append(errors, "invalid payment_method")
	} else if method.RequiresReference() && countDigits(req.Reference) < MinReferenceDigits {
		errors = append(errors, "reference incomplete")
	}

	if req.Client != nil {
		if strings.TrimSpace(req.Client.IDDocument) == "" {
			errors = append(errors, "client id_document is required")
		}
		if strings.TrimSpace(req.Client.Name) == "" {
			errors = append(errors, "client name is required")
		}
	}

	return errors
}

func ValidateInvoiceUpdate(ctx context.Context, id uuid.UUID, req InvoiceUpdateRequest) []string {
	var errors []string

	if id == uuid.Nil {
		errors = append(errors, "invalid invoice id")
	}

	if invoicestatus.ByName(req.Status) == nil {
		errors = append(errors, "invalid status")
	}

	return errors
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
