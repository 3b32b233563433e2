package pkg

import (
	"context"
	"testing"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestHealthServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	hs := NewHealthService("records")

	status, err := hs.Check(ctx)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if status != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Errorf("status before Start = %v, want NOT_SERVING", status)
	}

	if err := hs.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	status, _ = hs.Check(ctx)
	if status != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("status after Start = %v, want SERVING", status)
	}

	if err := hs.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	status, _ = hs.Check(ctx)
	if status != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Errorf("status after Stop = %v, want NOT_SERVING", status)
	}
}
