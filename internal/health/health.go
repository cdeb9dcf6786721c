// Package health exposes the standard gRPC health service so orchestrators can
// probe the process independently of the HTTP routes.
package health

import (
	"net"

	"github.com/sbilibin2017/recipe-share/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Service is the name reported for the recipe HTTP API.
const Service = "recipe-share"

// Server runs grpc.health.v1.Health.
type Server struct {
	server *grpc.Server
	health *health.Server
}

// New creates a health server reporting NOT_SERVING until SetServing(true).
func New() *Server {
	s := &Server{
		server: grpc.NewServer(),
		health: health.NewServer(),
	}
	healthpb.RegisterHealthServer(s.server, s.health)
	s.SetServing(false)
	return s
}

// SetServing flips the status of both the overall server and Service.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(Service, status)
}

// Serve blocks accepting connections on lis until Shutdown.
func (s *Server) Serve(lis net.Listener) error {
	logger.Log.Infow("gRPC health server listening", "addr", lis.Addr().String())
	return s.server.Serve(lis)
}

// Shutdown reports NOT_SERVING to watchers and stops the server gracefully.
func (s *Server) Shutdown() {
	s.health.Shutdown()
	s.server.GracefulStop()
}
