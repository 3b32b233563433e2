package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/appetiteclub/frontdesk/services/records/internal/records"
)

const (
	invoicesCollection = "invoices"
	countersCollection = "counters"
	invoiceCounterID   = "invoice_number"
)

type InvoiceRepo struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

func NewInvoiceRepo(db *mongo.Database) *InvoiceRepo {
	return &InvoiceRepo{
		collection: db.Collection(invoicesCollection),
		counters:   db.Collection(countersCollection),
	}
}

func (r *InvoiceRepo) Create(ctx context.Context, invoice *records.Invoice) error {
	if invoice == nil {
		return fmt.Errorf("invoice is nil")
	}

	if _, err := r.collection.InsertOne(ctx, invoice); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("invoice for order %s: %w", invoice.OrderID, records.ErrDuplicate)
		}
		return fmt.Errorf("cannot create invoice: %w", err)
	}

	return nil
}

func (r *InvoiceRepo) Get(ctx context.Context, id uuid.UUID) (*records.Invoice, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *InvoiceRepo) GetByOrder(ctx context.Context, orderID uuid.UUID) (*records.Invoice, error) {
	return r.findOne(ctx, bson.M{"order_id": orderID})
}

func (r *InvoiceRepo) findOne(ctx context.Context, filter bson.M) (*records.Invoice, error) {
	var invoice records.Invoice
	err := r.collection.FindOne(ctx, filter).Decode(&invoice)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get invoice: %w", err)
	}
	return &invoice, nil
}

func (r *InvoiceRepo) List(ctx context.Context) ([]*records.Invoice, error) {
	opts := options.Find().SetSort(bson.D{{Key: "number", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot list invoices: %w", err)
	}
	defer cursor.Close(ctx)

	result := []*records.Invoice{}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode invoices: %w", err)
	}

	return result, nil
}

func (r *InvoiceRepo) Save(ctx context.Context, invoice *records.Invoice) error {
	if invoice == nil {
		return fmt.Errorf("invoice is nil")
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": invoice.ID}, bson.M{"$set": invoice})
	if err != nil {
		return fmt.Errorf("cannot update invoice: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("invoice %s: %w", invoice.ID, records.ErrNotFound)
	}

	return nil
}

func (r *InvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("cannot delete invoice: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("invoice %s: %w", id, records.ErrNotFound)
	}

	return nil
}

// NextNumber hands out invoice numbers from a counter document.
func (r *InvoiceRepo) NextNumber(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": invoiceCounterID},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("cannot allocate invoice number: %w", err)
	}

	return counter.Seq, nil
}
