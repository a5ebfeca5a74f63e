package grpc

import (
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"

	"todo-notes/internal/api/grpc/interceptors"
)

// maxConcurrentStreams ограничивает число одновременных стримов на соединение
const maxConcurrentStreams = 25

// NewServer создает gRPC сервер с лентой изменений и health сервисом.
// Порядок интерцепторов: Logger, затем Validate (логируются и отклоненные запросы).
func NewServer(feed ChangeFeedServer, healthSrv *health.Server, log *zap.Logger) *grpc.Server {
	grpcServer := grpc.NewServer(
		grpc.MaxConcurrentStreams(maxConcurrentStreams),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle:     30 * time.Minute,
			MaxConnectionAgeGrace: 5 * time.Second,
			Time:                  5 * time.Minute,
			Timeout:               20 * time.Second,
		}),
		// Клиенты ленты держат стрим долго и пингуют, чтобы пережить NAT
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             30 * time.Second,
			PermitWithoutStream: true,
		}),
		grpc.ChainUnaryInterceptor(
			interceptors.LoggerUnaryInterceptor(log),
			interceptors.ValidateUnaryInterceptor,
		),
		grpc.ChainStreamInterceptor(
			interceptors.StreamInterceptor(log),
			interceptors.ValidateStreamInterceptor,
		),
	)

	grpcServer.RegisterService(&ChangeFeedServiceDesc, feed)
	healthSrv.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	log.Info("registered gRPC services", zap.Strings("services", []string{serviceName, healthpb.Health_ServiceDesc.ServiceName}))

	return grpcServer
}
