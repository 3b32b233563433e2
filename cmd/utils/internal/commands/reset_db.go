package commands

import (
	"context"

	"github.com/appetiteclub/apt"
	"go.mongodb.org/mongo-driver/bson"
)

// ResetDB drops the records and session databases. USE WITH CAUTION.
func ResetDB(ctx context.Context, config *apt.Config, logger apt.Logger) error {
	logger.Infof("DANGER: this drops every frontdesk database and cannot be undone")

	client, err := connect(ctx, config, logger)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	databases := []string{
		config.GetStringOrDef("records.db", defaultRecordsDB),
		config.GetStringOrDef("sessions.db", defaultSessionDB),
	}

	for _, dbName := range databases {
		logger.Info("Dropping database", "database", dbName)
		result := client.Database(dbName).RunCommand(ctx, bson.D{{Key: "dropDatabase", Value: 1}})
		if result.Err() != nil {
			logger.Infof("Failed to drop database %s (may not exist): %v", dbName, result.Err())
			continue
		}
		logger.Info("Database dropped", "database", dbName)
	}

	return nil
}
