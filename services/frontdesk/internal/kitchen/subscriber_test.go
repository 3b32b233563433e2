package kitchen

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/appetiteclub/frontdesk/pkg/event"
)

func TestSubscriberAppliesOrderEvents(t *testing.T) {
	o := newOrder(3, received, 0)
	engine, _, _ := newLoadedEngine(t, o)

	sub := NewMockSubscriber()
	s := NewSubscriber(sub, engine, "main", nil)
	ctx := context.Background()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if len(sub.Topics) != 1 || sub.Topics[0] != event.OrdersTopic("main") {
		t.Fatalf("subscribed to %v", sub.Topics)
	}

	tests := []struct {
		name       string
		msg        []byte
		wantStatus string
	}{
		{
			name:       "statusChanged",
			msg:        mustJSON(t, event.OrderEvent{EventType: event.EventOrderStatusChanged, OrderID: o.ID.String(), Status: inPreparation, OccurredAt: time.Now()}),
			wantStatus: inPreparation,
		},
		{
			name:       "unknownTypeIgnored",
			msg:        mustJSON(t, event.OrderEvent{EventType: "order.renamed", OrderID: o.ID.String(), Status: ready}),
			wantStatus: inPreparation,
		},
		{
			name:       "malformedIgnored",
			msg:        []byte("{not json"),
			wantStatus: inPreparation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := sub.Deliver(ctx, event.OrdersTopic("main"), tt.msg); err != nil {
				t.Fatalf("handler error = %v", err)
			}
			if got := engine.Snapshot()[0].Status; got != tt.wantStatus {
				t.Errorf("status = %s, want %s", got, tt.wantStatus)
			}
		})
	}
}

func TestSubscriberWithoutTransport(t *testing.T) {
	s := NewSubscriber(nil, NewEngine(NewMockOrderStore(), nil, 0, nil), "main", nil)
	if err := s.Start(context.Background()); err != nil {
		t.Errorf("Start() error = %v", err)
	}
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}
