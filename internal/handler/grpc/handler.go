// Package grpc exposes the portal's gRPC surface. The only service served
// today is the standard health protocol used by load balancers and
// orchestrators to probe the instance.
package grpc

import (
	"context"

	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// Handler is the root gRPC transport handler. A handler instance is created
// once at startup and shared by the gRPC server.
type Handler struct {
	grpc_health_v1.UnimplementedHealthServer

	// services provides access to all application business operations.
	services *service.Services

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// Register attaches the implemented services to the given gRPC server.
func (h *Handler) Register(server *grpc.Server) {
	grpc_health_v1.RegisterHealthServer(server, h)
}

// Check implements the health protocol. The process answers SERVING as soon
// as it is able to accept the RPC; per-dependency statuses are not reported.
func (h *Handler) Check(ctx context.Context, req *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	logger.FromContext(ctx).Debug().Str("service", req.GetService()).Msg("health check")
	return &grpc_health_v1.HealthCheckResponse{
		Status: grpc_health_v1.HealthCheckResponse_SERVING,
	}, nil
}

// Watch implements the streaming variant of the health protocol. The status
// never changes while the process lives, so a single message is sent and the
// stream is held open until the client goes away.
func (h *Handler) Watch(req *grpc_health_v1.HealthCheckRequest, stream grpc_health_v1.Health_WatchServer) error {
	err := stream.Send(&grpc_health_v1.HealthCheckResponse{
		Status: grpc_health_v1.HealthCheckResponse_SERVING,
	})
	if err != nil {
		return status.Error(codes.Canceled, "stream closed")
	}

	<-stream.Context().Done()
	return stream.Context().Err()
}
