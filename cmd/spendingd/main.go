package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/milad/energyusage/internal/config"
	"github.com/milad/energyusage/internal/logger"
	"github.com/milad/energyusage/internal/publisher"
	"github.com/milad/energyusage/internal/repo/sqliterepo"
	"github.com/milad/energyusage/internal/scheduler"
	"github.com/milad/energyusage/internal/service"
	grpcserver "github.com/milad/energyusage/internal/transport/grpc"
)

func main() {
	cfgPath := flag.String("config", "", "config file (default $ENERGYUSAGE_CONFIG or ./config.yaml)")
	flag.Parse()

	cfg, err := config.Load(config.Path(*cfgPath))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg, err := logger.New(cfg.Logging.Env, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	err = run(cfg, lg)
	os.Exit(exitCode(lg, err))
}

// exitCode logs a failed run and flushes the logger before the process exits.
func exitCode(lg *zap.Logger, err error) int {
	code := 0
	if err != nil {
		lg.Error("spendingd exited", zap.Error(err))
		code = 1
	}
	_ = lg.Sync()
	return code
}

func run(cfg config.Config, lg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := sqliterepo.Open(cfg.Database.Path, sqliterepo.Options{BusyTimeout: cfg.Database.BusyTimeout()})
	if err != nil {
		return fmt.Errorf("open database %q: %w", cfg.Database.Path, err)
	}
	defer repo.Close()

	svc := service.NewSpendingService(repo, service.WithLogger(lg.Named("service")))

	if cfg.MQTT.Enabled {
		pub, err := publisher.Connect(cfg.MQTT, lg)
		if err != nil {
			return err
		}
		defer pub.Close()

		sched := scheduler.New(cfg.Publish.Schedule, func(ctx context.Context) error {
			summary, err := publisher.BuildSummary(ctx, svc, cfg.Publish.Periods, time.Now())
			if err != nil {
				return err
			}
			return pub.PublishSummary(ctx, summary)
		}, lg)
		if err := sched.Start(ctx); err != nil {
			return err
		}
		defer sched.Stop()
	}

	if cfg.Metrics.Addr != "" {
		metricsSrv := newMetricsServer(cfg.Metrics.Addr)
		go func() {
			lg.Info("metrics listening", zap.String("addr", cfg.Metrics.Addr))
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				lg.Error("metrics server", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GRPC.ShutdownTimeout())
			defer cancel()
			_ = metricsSrv.Shutdown(shutdownCtx)
		}()
	}

	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		return fmt.Errorf("listen %q: %w", cfg.GRPC.Addr, err)
	}
	lg.Info("gRPC listening", zap.String("addr", cfg.GRPC.Addr))

	g := grpc.NewServer(grpc.UnaryInterceptor(grpcserver.UnaryInterceptor(lg.Named("grpc"))))
	grpcserver.RegisterSpendingServiceServer(g, grpcserver.New(svc))

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(g, hs)

	go func() {
		<-ctx.Done()
		lg.Info("shutting down gRPC")
		hs.Shutdown()
		ch := make(chan struct{})
		go func() {
			g.GracefulStop()
			close(ch)
		}()
		select {
		case <-ch:
		case <-time.After(cfg.GRPC.ShutdownTimeout()):
			g.Stop()
		}
	}()

	if err := g.Serve(lis); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func newMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
