package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sessionsCollection = "sessions"

type sessionDocument struct {
	ID        string            `bson:"_id"`
	Values    map[string]string `bson:"values"`
	UpdatedAt time.Time         `bson:"updated_at"`
	ExpiresAt time.Time         `bson:"expires_at"`
}

// SessionStore persists session state in mongo. A TTL index on expires_at
// lets the server drop abandoned sessions.
type SessionStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	ttl        time.Duration
	config     *apt.Config
	logger     apt.Logger
}

func NewSessionStore(config *apt.Config, ttl time.Duration, logger apt.Logger) *SessionStore {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &SessionStore{
		ttl:    ttl,
		config: config,
		logger: logger,
	}
}

func (s *SessionStore) Start(ctx context.Context) error {
	connString := s.config.GetStringOrDef("db.mongo.url", "mongodb://localhost:27017")
	dbName := s.config.GetStringOrDef("db.mongo.name", "frontdesk_sessions")

	clientOptions := options.Client().ApplyURI(connString).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("cannot connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("cannot ping MongoDB: %w", err)
	}

	s.client = client
	s.collection = client.Database(dbName).Collection(sessionsCollection)

	_, err = s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("cannot create session TTL index: %w", err)
	}

	s.logger.Infof("Connected to MongoDB: database: %s", dbName)
	return nil
}

func (s *SessionStore) Stop(ctx context.Context) error {
	if s.client != nil {
		if err := s.client.Disconnect(ctx); err != nil {
			return fmt.Errorf("cannot disconnect from MongoDB: %w", err)
		}
		s.logger.Info("Disconnected from MongoDB")
	}
	return nil
}

func (s *SessionStore) Load(ctx context.Context, sessionID string) (map[string][]byte, error) {
	if s.collection == nil {
		return nil, errors.New("session store not started")
	}

	var doc sessionDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return map[string][]byte{}, nil
		}
		return nil, fmt.Errorf("cannot load session: %w", err)
	}

	if time.Now().After(doc.ExpiresAt) {
		return map[string][]byte{}, nil
	}

	values := make(map[string][]byte, len(doc.Values))
	for k, v := range doc.Values {
		values[k] = []byte(v)
	}
	return values, nil
}

func (s *SessionStore) Save(ctx context.Context, sessionID string, values map[string][]byte) error {
	if s.collection == nil {
		return errors.New("session store not started")
	}

	now := time.Now()
	doc := sessionDocument{
		ID:        sessionID,
		Values:    make(map[string]string, len(values)),
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	for k, v := range values {
		doc.Values[k] = string(v)
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": sessionID}, doc, opts); err != nil {
		return fmt.Errorf("cannot save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if s.collection == nil {
		return errors.New("session store not started")
	}

	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": sessionID}); err != nil {
		return fmt.Errorf("cannot delete session: %w", err)
	}
	return nil
}
