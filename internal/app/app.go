package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/omysaju/saju-go/internal/config"
	"github.com/omysaju/saju-go/internal/postgres"
	redisx "github.com/omysaju/saju-go/internal/redis"
	"github.com/omysaju/saju-go/internal/remote"
	"github.com/omysaju/saju-go/internal/repository"
	postgresrepo "github.com/omysaju/saju-go/internal/repository/postgres"
	redisrepo "github.com/omysaju/saju-go/internal/repository/redis"
	"github.com/omysaju/saju-go/internal/service"
	httpgin "github.com/omysaju/saju-go/internal/transport/http/gin"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	services   *service.Services
	pubsub     *redisx.OrdersPubSub
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Initialize dependencies
	rdb, err := redisx.New(context.Background(), redisx.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	var store repository.RecordStore
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%d/%s?sslmode=%s",
			cfg.Postgres.User,
			cfg.Postgres.Password,
			cfg.Postgres.Host,
			cfg.Postgres.Port,
			cfg.Postgres.Name,
			cfg.Postgres.SSLMode,
		)

		pgxPool, err := postgres.New(context.Background(), postgres.Config{DSN: dsn})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}

		store = postgresrepo.NewRecordStore(pgxPool)
	default:
		store = redisrepo.NewRecordStore(rdb)
	}

	// Initialize repositories
	cache := redisrepo.NewCache(rdb)
	deadlines := redisrepo.NewDeadlineStore(rdb)
	pubsub := redisx.NewOrdersPubSub(rdb)
	limiter := redisrepo.NewSlidingWindowLimiter(rdb, "orders", 10, 1*time.Minute)
	idempotencyStore := redisrepo.NewIdempotencyStore(rdb, 2*time.Hour)

	sheet := remote.New(remote.Config{URL: cfg.Sheet.URL}, logger)

	// Initialize services
	services := service.NewServices(
		store,
		sheet,
		cache,
		deadlines,
		pubsub,
		limiter,
		logger,
		service.Config{},
	)

	// Initialize Gin router
	router := httpgin.NewRouter(services, idempotencyStore, cfg.Admin.Password, logger)

	return &App{
		cfg:      cfg,
		logger:   logger,
		services: services,
		pubsub:   pubsub,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Fabricated activity ticks for the landing page
	g.Go(func() error {
		if err := a.services.Live.RunSimulator(gCtx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("simulator stopped: %w", err)
		}
		return nil
	})

	// Order change log, mostly for operators tailing the output
	g.Go(func() error {
		err := a.pubsub.Subscribe(gCtx, func(_ context.Context, kind, orderID string) {
			a.logger.Info("orders changed", "kind", kind, "order_id", orderID)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("orders subscription stopped: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
