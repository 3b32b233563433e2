package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/appetiteclub/frontdesk/cmd/utils/internal/seeding"
	"github.com/appetiteclub/frontdesk/pkg/enums/occupancy"
	"github.com/appetiteclub/frontdesk/pkg/enums/orderstatus"
)

const defaultReconcileGrace = 15 * time.Minute

// ReconcileTables releases occupied tables that no longer hold an active
// order, for example when billing settled an invoice but the release call
// failed. With dry.run set it only reports them.
func ReconcileTables(ctx context.Context, config *apt.Config, logger apt.Logger) error {
	dryRun := config.GetStringOrDef("dry.run", "false") == "true"

	grace := defaultReconcileGrace
	if raw, ok := config.GetString("reconcile.grace"); ok && raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid reconcile.grace %q: %w", raw, err)
		}
		grace = parsed
	}

	client, err := connect(ctx, config, logger)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	db := recordsDB(client, config)
	tablesColl := db.Collection(seeding.TablesCollection)

	var tables []seeding.TableDoc
	if err := findAll(ctx, tablesColl, bson.M{"occupancy": occupancy.States.Occupied.Name}, &tables); err != nil {
		return fmt.Errorf("cannot fetch tables: %w", err)
	}

	active, _ := orderstatus.Expand(orderstatus.Active)
	var orders []seeding.OrderDoc
	if err := findAll(ctx, db.Collection(seeding.OrdersCollection), bson.M{"status": bson.M{"$in": active}}, &orders); err != nil {
		return fmt.Errorf("cannot fetch active orders: %w", err)
	}

	stale := seeding.StaleTables(tables, orders, time.Now(), grace)
	if len(stale) == 0 {
		logger.Info("No tables to release", "occupied", len(tables))
		return nil
	}

	for _, t := range stale {
		if dryRun {
			logger.Info("Would release table", "number", t.Number, "id", t.ID.String())
			continue
		}

		// Fenced on OCCUPIED so a table a guest just claimed again is left alone.
		result, err := tablesColl.UpdateOne(ctx,
			bson.M{"_id": t.ID, "occupancy": occupancy.States.Occupied.Name, "updated_at": t.UpdatedAt},
			bson.M{"$set": bson.M{
				"occupancy":  occupancy.States.Available.Name,
				"updated_at": time.Now(),
				"updated_by": "reconcile-tables",
			}},
		)
		if err != nil {
			return fmt.Errorf("release table %d: %w", t.Number, err)
		}
		if result.ModifiedCount == 0 {
			logger.Info("Table changed meanwhile, skipped", "number", t.Number)
			continue
		}
		logger.Info("Table released", "number", t.Number)
	}

	return nil
}
