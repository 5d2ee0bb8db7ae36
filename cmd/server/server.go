package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/ow-rando/internal/config"
	"github.com/KirkDiggler/ow-rando/internal/data"
	"github.com/KirkDiggler/ow-rando/internal/errors"
	"github.com/KirkDiggler/ow-rando/internal/handlers/generation/v1alpha1"
	"github.com/KirkDiggler/ow-rando/internal/orchestrators/generation"
	"github.com/KirkDiggler/ow-rando/internal/pkg/clock"
	"github.com/KirkDiggler/ow-rando/internal/pkg/idgen"
	"github.com/KirkDiggler/ow-rando/internal/redis"
	"github.com/KirkDiggler/ow-rando/internal/repositories/slot"
)

var (
	grpcPort   int
	store      string
	sqlitePath string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long: `Start the ow-rando generation gRPC server. Configuration is read from
OW_RANDO_* environment variables; flags override them.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (overrides OW_RANDO_PORT)")
	serverCmd.Flags().StringVar(&store, "store", "", "Slot store: memory, redis or sqlite (overrides OW_RANDO_STORE)")
	serverCmd.Flags().StringVar(&sqlitePath, "sqlite-path", "", "SQLite database path (overrides OW_RANDO_SQLITE_PATH)")
}

func loadServerConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port = grpcPort
	}
	if flags.Changed("store") {
		cfg.Store = config.Store(store)
	}
	if flags.Changed("sqlite-path") {
		cfg.SQLitePath = sqlitePath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openSlotRepository builds the configured slot store. The returned close
// func is never nil.
func openSlotRepository(ctx context.Context, cfg *config.Config) (slot.Repository, func(), error) {
	noop := func() {}

	switch cfg.Store {
	case config.StoreRedis:
		client, err := redis.Connect(ctx, cfg.RedisAddrs, &redis.Options{
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			UseTLS:   cfg.RedisTLS,
		})
		if err != nil {
			return nil, noop, err
		}
		repo, err := slot.NewRedis(&slot.RedisConfig{Client: client, Clock: clock.New()})
		if err != nil {
			_ = client.Close()
			return nil, noop, err
		}
		return repo, func() { _ = client.Close() }, nil

	case config.StoreSQLite:
		repo, err := slot.OpenSQLite(&slot.SQLiteConfig{Path: cfg.SQLitePath, Clock: clock.New()})
		if err != nil {
			return nil, noop, err
		}
		return repo, func() { _ = repo.Close() }, nil

	case config.StoreMemory:
		return slot.NewInMemory(clock.New()), noop, nil
	}

	return nil, noop, errors.InvalidArgumentf("unknown store %q", cfg.Store)
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadServerConfig(cmd)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tables, err := data.Load()
	if err != nil {
		return fmt.Errorf("failed to load tables: %w", err)
	}

	repo, closeRepo, err := openSlotRepository(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open slot store: %w", err)
	}
	defer closeRepo()

	orch, err := generation.NewOrchestrator(&generation.Config{
		Tables:      tables,
		SlotRepo:    repo,
		IDGenerator: idgen.NewUUID("run"),
		SlotTTL:     cfg.SlotTTL,
		Concurrency: cfg.Concurrency,
	})
	if err != nil {
		return fmt.Errorf("failed to create generation orchestrator: %w", err)
	}

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{GenerationService: orch})
	if err != nil {
		return fmt.Errorf("failed to create generation handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := newGRPCServer(logger)
	v1alpha1.RegisterGenerationServiceServer(srv, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting",
			"port", cfg.Port,
			"store", cfg.Store,
			"slot_ttl", cfg.SlotTTL.String(),
			"concurrency", cfg.Concurrency)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down gRPC server")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("Server stopped gracefully")
		}
		return nil
	case err := <-errChan:
		return err
	}
}

func newGRPCServer(logger *slog.Logger) *grpc.Server {
	logOpts := []grpc_logging.Option{
		grpc_logging.WithLogOnEvents(grpc_logging.StartCall, grpc_logging.FinishCall),
	}
	recoveryOpts := []grpc_recovery.Option{
		grpc_recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
			logger.ErrorContext(ctx, "Recovered from panic", "panic", p)
			return errors.ToGRPCError(errors.Internal("internal error"))
		}),
	}

	return grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(interceptorLogger(logger), logOpts...),
			grpc_recovery.UnaryServerInterceptor(recoveryOpts...),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(interceptorLogger(logger), logOpts...),
			grpc_recovery.StreamServerInterceptor(recoveryOpts...),
		),
	)
}

// interceptorLogger adapts slog to the middleware logger.
func interceptorLogger(l *slog.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(ctx context.Context, lvl grpc_logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}
