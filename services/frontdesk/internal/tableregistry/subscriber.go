package tableregistry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/pkg"
)

// Subscriber keeps the registry cache in step with occupancy events.
type Subscriber struct {
	subscriber   events.Subscriber
	registry     *Registry
	restaurantID string
	logger       apt.Logger
}

func NewSubscriber(subscriber events.Subscriber, registry *Registry, restaurantID string, logger apt.Logger) *Subscriber {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Subscriber{
		subscriber:   subscriber,
		registry:     registry,
		restaurantID: restaurantID,
		logger:       logger,
	}
}

func (s *Subscriber) Start(ctx context.Context) error {
	if s.subscriber == nil {
		s.logger.Info("NATS subscriber not configured, skipping table subscription")
		return nil
	}

	topic := pkg.TablesTopic(s.restaurantID)
	if err := s.subscriber.Subscribe(ctx, topic, s.handleEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	s.logger.Info("table subscriber started", "topic", topic)
	return nil
}

func (s *Subscriber) Stop(ctx context.Context) error {
	return nil
}

func (s *Subscriber) handleEvent(ctx context.Context, msg []byte) error {
	var evt pkg.TableOccupancyEvent
	if err := json.Unmarshal(msg, &evt); err != nil {
		s.logger.Error("failed to unmarshal table event", "error", err)
		return nil
	}

	if evt.EventType != pkg.EventTableOccupancyChanged {
		s.logger.Debug("ignoring unknown event type", "event_type", evt.EventType)
		return nil
	}

	id, err := uuid.Parse(evt.TableID)
	if err != nil {
		s.logger.Error("table event with invalid id", "table_id", evt.TableID)
		return nil
	}

	s.registry.Apply(id, evt.TableNumber, evt.Occupancy)
	s.logger.Debug("table occupancy changed", "table_id", evt.TableID, "occupancy", evt.Occupancy)
	return nil
}
