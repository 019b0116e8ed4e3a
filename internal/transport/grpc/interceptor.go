package grpcserver

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/milad/energyusage/internal/logger"
)

// RequestIDKey is the metadata key carrying the request id in both directions.
const RequestIDKey = "x-request-id"

var (
	grpcRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grpc_server_requests_total",
			Help: "Total number of gRPC requests served.",
		},
		[]string{"method", "code"},
	)
	grpcRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "grpc_server_request_duration_seconds",
			Help:    "gRPC request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// UnaryInterceptor tags each call with a request id, stores a request-scoped
// logger in the context and records metrics.
func UnaryInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	if log == nil {
		log = zap.NewNop()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		reqID := incomingRequestID(ctx)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDKey, reqID))

		reqLog := log.With(zap.String("request_id", reqID), zap.String("method", info.FullMethod))
		resp, err := handler(logger.ContextWithLogger(ctx, reqLog), req)

		dur := time.Since(start)
		code := status.Code(err)
		grpcRequestsTotal.WithLabelValues(info.FullMethod, code.String()).Inc()
		grpcRequestDurationSeconds.WithLabelValues(info.FullMethod).Observe(dur.Seconds())

		fields := []zap.Field{zap.String("code", code.String()), zap.Duration("took", dur)}
		if err != nil {
			reqLog.Warn("grpc request failed", append(fields, zap.Error(err))...)
		} else {
			reqLog.Info("grpc request", fields...)
		}
		return resp, err
	}
}

func incomingRequestID(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if v := md.Get(RequestIDKey); len(v) > 0 {
		return v[0]
	}
	return ""
}
