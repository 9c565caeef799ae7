package router

import (
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/Brayanhenaor/vetquestions/internal/api/grpc/middleware"
	"github.com/Brayanhenaor/vetquestions/internal/logger"
)

// ServiceName is the health-check name reported for the whole process.
const ServiceName = "vetquestions.auth"

// Router builds the gRPC server that exposes health checks.
type Router struct {
	health *health.Server
	logger *logger.Logger
}

// New creates a Router with every service reported as serving.
func New(logger *logger.Logger) *Router {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return &Router{
		health: hs,
		logger: logger,
	}
}

// Register creates the gRPC server with interceptors and services attached.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandler(logging.RecoverPanic)),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recovery.WithRecoveryHandler(logging.RecoverPanic)),
		),
	)

	healthpb.RegisterHealthServer(s, r.health)
	reflection.Register(s)

	return s
}

// Shutdown reports NOT_SERVING for every service so probes drain traffic.
func (r *Router) Shutdown() {
	r.health.Shutdown()
}
