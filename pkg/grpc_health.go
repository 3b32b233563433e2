package pkg

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthService exposes the standard gRPC health protocol for a service and
// follows its lifecycle: NOT_SERVING until Start, NOT_SERVING again on Stop.
type HealthService struct {
	name   string
	server *health.Server
}

func NewHealthService(name string) *HealthService {
	server := health.NewServer()
	server.SetServingStatus(name, healthpb.HealthCheckResponse_NOT_SERVING)
	server.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	return &HealthService{name: name, server: server}
}

// RegisterGRPCService registers the health service with the gRPC server.
func (h *HealthService) RegisterGRPCService(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.server)
}

func (h *HealthService) Start(ctx context.Context) error {
	h.server.SetServingStatus(h.name, healthpb.HealthCheckResponse_SERVING)
	h.server.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return nil
}

func (h *HealthService) Stop(ctx context.Context) error {
	h.server.Shutdown()
	return nil
}

// Check reports the current status for the named service.
func (h *HealthService) Check(ctx context.Context) (healthpb.HealthCheckResponse_ServingStatus, error) {
	resp, err := h.server.Check(ctx, &healthpb.HealthCheckRequest{Service: h.name})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}
