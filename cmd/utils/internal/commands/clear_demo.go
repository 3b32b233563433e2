package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/appetiteclub/frontdesk/cmd/utils/internal/seeding"
	"github.com/appetiteclub/frontdesk/pkg/enums/occupancy"
)

// ClearDemo removes the demo orders, frees the tables the demo seed occupied
// and drops the seed marker so seed-demo can run again.
func ClearDemo(ctx context.Context, config *apt.Config, logger apt.Logger) error {
	logger.Info("Starting demo data cleanup...")

	client, err := connect(ctx, config, logger)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	db := recordsDB(client, config)

	result, err := db.Collection(seeding.OrdersCollection).DeleteMany(ctx, bson.M{"created_by": seeding.DemoActor})
	if err != nil {
		return fmt.Errorf("delete demo orders: %w", err)
	}
	logger.Info("Deleted demo orders", "count", result.DeletedCount)

	released, err := db.Collection(seeding.TablesCollection).UpdateMany(ctx,
		bson.M{"updated_by": seeding.DemoActor, "occupancy": occupancy.States.Occupied.Name},
		bson.M{"$set": bson.M{
			"occupancy":  occupancy.States.Available.Name,
			"updated_at": time.Now(),
			"updated_by": seeding.DemoActor,
		}},
	)
	if err != nil {
		return fmt.Errorf("release demo tables: %w", err)
	}
	logger.Info("Released demo tables", "count", released.ModifiedCount)

	if _, err := db.Collection(seeding.SeedsCollection).DeleteOne(ctx, bson.M{"_id": seeding.DemoSeedID}); err != nil {
		return fmt.Errorf("delete demo seed marker: %w", err)
	}

	return nil
}
