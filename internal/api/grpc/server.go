package grpc

import (
	"context"
	"time"

	"carsharing-backend/internal/api/grpc/interceptor"
	"carsharing-backend/internal/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the name reported on the health service next to the
// overall "" entry.
const ServiceName = "carsharing.v1.Rentals"

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the gRPC side of the backend: health checks and reflection.
type Server struct {
	*grpc.Server
	health   *health.Server
	db       Pinger
	interval time.Duration
}

func NewServer(db Pinger, interval time.Duration) *Server {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	s := grpc.NewServer(
		grpc.UnaryInterceptor(interceptor.Unary()),
	)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)

	// Register reflection service for grpcurl
	reflection.Register(s)

	return &Server{Server: s, health: hs, db: db, interval: interval}
}

// WatchDatabase pings the database every interval and publishes the result
// until ctx is done. The first check runs immediately.
func (s *Server) WatchDatabase(ctx context.Context) {
	s.check(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.check(ctx)
		}
	}
}

func (s *Server) check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.db.Ping(pingCtx); err != nil {
		logger.Warn("Database health check failed", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Shutdown marks every service NOT_SERVING and drains in-flight calls.
func (s *Server) Shutdown() {
	s.health.Shutdown()
	s.GracefulStop()
}
