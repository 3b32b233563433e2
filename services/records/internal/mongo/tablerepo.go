package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/appetiteclub/frontdesk/services/records/internal/records"
)

const tablesCollection = "tables"

type TableRepo struct {
	collection *mongo.Collection
}

func NewTableRepo(db *mongo.Database) *TableRepo {
	return &TableRepo{
		collection: db.Collection(tablesCollection),
	}
}

func (r *TableRepo) Create(ctx context.Context, table *records.Table) error {
	if table == nil {
		return fmt.Errorf("table is nil")
	}

	if _, err := r.collection.InsertOne(ctx, table); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("table %d: %w", table.Number, records.ErrDuplicate)
		}
		return fmt.Errorf("cannot create table: %w", err)
	}

	return nil
}

func (r *TableRepo) Get(ctx context.Context, id uuid.UUID) (*records.Table, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *TableRepo) GetByNumber(ctx context.Context, number int) (*records.Table, error) {
	return r.findOne(ctx, bson.M{"number": number})
}

func (r *TableRepo) findOne(ctx context.Context, filter bson.M) (*records.Table, error) {
	var table records.Table
	err := r.collection.FindOne(ctx, filter).Decode(&table)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get table: %w", err)
	}
	return &table, nil
}

func (r *TableRepo) List(ctx context.Context) ([]*records.Table, error) {
	return r.find(ctx, bson.M{})
}

func (r *TableRepo) ListByOccupancy(ctx context.Context, occupancy string) ([]*records.Table, error) {
	return r.find(ctx, bson.M{"occupancy": occupancy})
}

func (r *TableRepo) find(ctx context.Context, filter bson.M) ([]*records.Table, error) {
	opts := options.Find().SetSort(bson.D{{Key: "number", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot list tables: %w", err)
	}
	defer cursor.Close(ctx)

	result := []*records.Table{}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode tables: %w", err)
	}

	return result, nil
}

func (r *TableRepo) SetOccupancy(ctx context.Context, id uuid.UUID, occupancy, expected string) (*records.Table, error) {
	filter := bson.M{"_id": id}
	if expected != "" {
		filter["occupancy"] = expected
	}
	update := bson.M{"$set": bson.M{"occupancy": occupancy, "updated_at": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var table records.Table
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&table)
	if err == nil {
		return &table, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("cannot update table occupancy: %w", err)
	}

	existing, getErr := r.Get(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	if existing == nil {
		return nil, fmt.Errorf("table %s: %w", id, records.ErrNotFound)
	}
	return nil, fmt.Errorf("table %s is %s: %w", id, existing.Occupancy, records.ErrConflict)
}
