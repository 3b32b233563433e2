package remote

import (
	"context"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
)

// InvoiceDataAccess centralizes decoding of invoice responses.
type InvoiceDataAccess struct {
	client *apt.ServiceClient
}

func NewInvoiceDataAccess(client *apt.ServiceClient) *InvoiceDataAccess {
	return &InvoiceDataAccess{client: client}
}

func (da *InvoiceDataAccess) CreateInvoice(ctx context.Context, draft restaurant.InvoiceDraft) (*restaurant.Invoice, error) {
	if da == nil || da.client == nil {
		return nil, networkError("create invoice", errNotConfigured)
	}

	resp, err := da.client.Create(ctx, "invoices", draft)
	if err != nil {
		return nil, networkError("create invoice", err)
	}

	var invoice restaurant.Invoice
	if err := decodeSuccessResponse(resp, &invoice); err != nil {
		return nil, networkError("decode invoice", err)
	}

	return &invoice, nil
}

func (da *InvoiceDataAccess) GetInvoice(ctx context.Context, id uuid.UUID) (*restaurant.Invoice, error) {
	if da == nil || da.client == nil {
		return nil, networkError("get invoice", errNotConfigured)
	}

	resp, err := da.client.Get(ctx, "invoices", id.String())
	if err != nil {
		return nil, networkError("get invoice", err)
	}

	var invoice restaurant.Invoice
	if err := decodeSuccessResponse(resp, &invoice); err != nil {
		return nil, networkError("decode invoice", err)
	}

	return &invoice, nil
}
