package kitchen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"

	"github.com/appetiteclub/frontdesk/pkg/event"
)

// Subscriber pushes order events from the record store into the engine so
// the board moves between polls.
type Subscriber struct {
	subscriber   events.Subscriber
	engine       *Engine
	restaurantID string
	logger       apt.Logger
}

func NewSubscriber(subscriber events.Subscriber, engine *Engine, restaurantID string, logger apt.Logger) *Subscriber {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Subscriber{
		subscriber:   subscriber,
		engine:       engine,
		restaurantID: restaurantID,
		logger:       logger,
	}
}

func (s *Subscriber) Start(ctx context.Context) error {
	if s.subscriber == nil {
		s.logger.Info("NATS subscriber not configured, kitchen board relies on polling")
		return nil
	}

	topic := event.OrdersTopic(s.restaurantID)
	if err := s.subscriber.Subscribe(ctx, topic, s.handleEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	s.logger.Info("kitchen subscriber started", "topic", topic)
	return nil
}

func (s *Subscriber) Stop(ctx context.Context) error {
	return nil
}

func (s *Subscriber) handleEvent(ctx context.Context, msg []byte) error {
	evt, ok, err := decodeOrderEvent(msg)
	if err != nil {
		s.logger.Error("failed to unmarshal order event", "error", err)
		return nil
	}
	if !ok {
		s.logger.Debug("ignoring unknown event type", "event_type", evt.EventType)
		return nil
	}

	s.engine.Apply(evt)
	s.logger.Debug("order event applied", "order_id", evt.OrderID, "status", evt.Status)
	return nil
}

// decodeOrderEvent reports false for event types the board does not track.
func decodeOrderEvent(data []byte) (event.OrderEvent, bool, error) {
	var evt event.OrderEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		return evt, false, err
	}

	switch evt.EventType {
	case event.EventOrderCreated, event.EventOrderStatusChanged:
		return evt, true, nil
	}
	return evt, false, nil
}
