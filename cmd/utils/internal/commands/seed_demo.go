package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/appetiteclub/frontdesk/cmd/utils/internal/seeding"
	"github.com/appetiteclub/frontdesk/pkg/enums/occupancy"
)

// SeedDemo writes a handful of orders in every lifecycle status into the
// records database. It needs the records bootstrap seed (tables and menu)
// to have run first.
func SeedDemo(ctx context.Context, config *apt.Config, logger apt.Logger) error {
	logger.Info("Starting demo seeding process...")

	client, err := connect(ctx, config, logger)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	db := recordsDB(client, config)

	seeds := db.Collection(seeding.SeedsCollection)
	count, err := seeds.CountDocuments(ctx, bson.M{"_id": seeding.DemoSeedID})
	if err != nil {
		return fmt.Errorf("check seed status: %w", err)
	}
	if count > 0 {
		logger.Info("Demo seeds already applied, skipping")
		return nil
	}

	doc, err := seeding.DefaultDemo()
	if err != nil {
		return err
	}

	var tables []seeding.TableDoc
	if err := findAll(ctx, db.Collection(seeding.TablesCollection), bson.M{}, &tables); err != nil {
		return fmt.Errorf("cannot fetch tables: %w", err)
	}
	var dishes []seeding.DishDoc
	if err := findAll(ctx, db.Collection(seeding.DishesCollection), bson.M{}, &dishes); err != nil {
		return fmt.Errorf("cannot fetch dishes: %w", err)
	}

	plan, err := seeding.BuildDemo(doc, tables, dishes, time.Now())
	if err != nil {
		return fmt.Errorf("build demo orders: %w", err)
	}

	// A demo order must not land on a table a real session already holds.
	for _, id := range plan.Occupied {
		for _, t := range tables {
			if t.ID == id && t.Occupancy == occupancy.States.Occupied.Name {
				return fmt.Errorf("table %d is already occupied", t.Number)
			}
		}
	}

	orders := db.Collection(seeding.OrdersCollection)
	for _, order := range plan.Orders {
		_, err := orders.UpdateOne(ctx,
			bson.M{"_id": order.ID},
			bson.M{"$setOnInsert": order},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("cannot create demo order for table %d: %w", order.TableNumber, err)
		}
	}
	logger.Info("Demo orders created", "count", len(plan.Orders))

	if err := markOccupied(ctx, db.Collection(seeding.TablesCollection), plan.Occupied); err != nil {
		return err
	}

	_, err = seeds.InsertOne(ctx, bson.M{
		"_id":         seeding.DemoSeedID,
		"description": "Create demo orders across every lifecycle status",
		"applied_at":  time.Now(),
	})
	if err != nil {
		logger.Infof("Failed to mark seed as applied: %v", err)
	}

	logger.Info("Demo seeds applied successfully")
	return nil
}

func markOccupied(ctx context.Context, tables *mongo.Collection, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := tables.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}, "occupancy": occupancy.States.Available.Name},
		bson.M{"$set": bson.M{
			"occupancy":  occupancy.States.Occupied.Name,
			"updated_at": time.Now(),
			"updated_by": seeding.DemoActor,
		}},
	)
	if err != nil {
		return fmt.Errorf("cannot occupy demo tables: %w", err)
	}
	return nil
}

func findAll(ctx context.Context, coll *mongo.Collection, filter interface{}, out interface{}) error {
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}
