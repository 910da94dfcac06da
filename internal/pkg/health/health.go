// Package health implements grpc.health.v1 on top of a dependency ping.
package health

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

const checkTimeout = 2 * time.Second

// Pinger is satisfied by every order store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server reports SERVING for the empty service name and for service while
// the pinger answers.
type Server struct {
	healthpb.UnimplementedHealthServer

	service string
	pinger  Pinger
}

func NewServer(service string, pinger Pinger) *Server {
	return &Server{service: service, pinger: pinger}
}

func (s *Server) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if name := req.GetService(); name != "" && name != s.service {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", name)
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	if err := s.pinger.Ping(ctx); err != nil {
		slog.WarnContext(ctx, "grpc health check failed", "error", err)
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}
