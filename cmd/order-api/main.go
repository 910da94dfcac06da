package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/jcmexdev/fitforge-orders/internal/config"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/domain"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/services"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/infra/adapters/repository"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/infra/httpx"
	"github.com/jcmexdev/fitforge-orders/internal/pkg/cache"
	"github.com/jcmexdev/fitforge-orders/internal/pkg/health"
	"github.com/jcmexdev/fitforge-orders/internal/pkg/interceptors"
	"github.com/jcmexdev/fitforge-orders/internal/pkg/telemetry"
	"github.com/jcmexdev/fitforge-orders/internal/statuslog"
	statuslogsqlite "github.com/jcmexdev/fitforge-orders/internal/statuslog/sqlite"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	telemetry.InitLogger(cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("order api stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.OTelEnabled {
		shutdown, err := telemetry.SetupTracer(ctx, telemetry.TracerConfig{
			ServiceName: cfg.OTelServiceName,
			Endpoint:    cfg.OTelEndpoint,
		})
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				slog.Error("tracer shutdown error", "error", err)
			}
		}()
	}

	store, err := repository.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			slog.Error("store close error", "error", err)
		}
	}()
	slog.Info("order store ready", "driver", cfg.StoreDriver)

	var history statuslog.Repository
	if cfg.StatusLogPath != "" {
		if err := repository.EnsureDir(cfg.StatusLogPath); err != nil {
			return err
		}
		logRepo, err := statuslogsqlite.Open(cfg.StatusLogPath)
		if err != nil {
			return err
		}
		defer logRepo.Close()
		history = logRepo
	}

	routerOpts := httpx.RouterOptions{
		AdminUser:      cfg.AdminUser,
		AdminPassword:  cfg.AdminPassword,
		IdempotencyTTL: cfg.IdempotencyTTL,
	}
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCache(cfg.RedisAddr, "order-api")
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			slog.Warn("redis unreachable, idempotency replays will be skipped until it recovers", "addr", cfg.RedisAddr, "error", err)
		}
		routerOpts.Cache = redisCache
	}

	notifier, closeNotifier, err := newNotifier(cfg.Notify)
	if err != nil {
		return err
	}
	defer closeNotifier()

	transitions := domain.PermissiveTransitions
	if cfg.StrictLifecycle {
		transitions = domain.LifecycleTransitions
	}

	handler := httpx.NewHandler(httpx.HandlerConfig{
		Orders:         services.NewOrderService(store, cfg.StrictTotals),
		Status:         services.NewStatusService(store, transitions, history),
		Analytics:      services.NewAnalyticsService(store, cfg.Location),
		Notifier:       notifier,
		Store:          store,
		NotifyOnCreate: cfg.Notify.OnCreate,
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           httpx.NewRouter(handler, routerOpts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.UnaryInterceptor(interceptors.UnaryServerInterceptor()),
	)
	healthpb.RegisterHealthServer(grpcServer, health.NewServer(cfg.OTelServiceName, store))

	grpcAddr := ":" + cfg.GRPCPort
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("order api http running", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		slog.Info("order api grpc running", "addr", grpcAddr)
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			grpcServer.Stop()
		}
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
