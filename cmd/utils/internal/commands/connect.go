package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultMongoURL  = "mongodb://localhost:27017"
	defaultRecordsDB = "frontdesk_records"
	defaultSessionDB = "frontdesk_sessions"
)

func connect(ctx context.Context, config *apt.Config, logger apt.Logger) (*mongo.Client, error) {
	mongoURL := config.GetStringOrDef("mongo.url", defaultMongoURL)

	clientOptions := options.Client().ApplyURI(mongoURL).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	logger.Info("Connected to MongoDB")
	return client, nil
}

func recordsDB(client *mongo.Client, config *apt.Config) *mongo.Database {
	return client.Database(config.GetStringOrDef("records.db", defaultRecordsDB))
}
