package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/vaulta/vaulta/internal/activities"
	"github.com/vaulta/vaulta/internal/app"
	"github.com/vaulta/vaulta/internal/events"
	jobmetrics "github.com/vaulta/vaulta/internal/jobs"
	"github.com/vaulta/vaulta/internal/observability"
	"github.com/vaulta/vaulta/internal/pincode"
	"github.com/vaulta/vaulta/internal/platform/cache"
	"github.com/vaulta/vaulta/internal/platform/db"
	"github.com/vaulta/vaulta/internal/products"
	"github.com/vaulta/vaulta/internal/querycache"
	"github.com/vaulta/vaulta/internal/shared"
	"github.com/vaulta/vaulta/internal/transactions"
	"github.com/vaulta/vaulta/internal/users"
	"github.com/vaulta/vaulta/internal/wallet"
	"github.com/vaulta/vaulta/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "vaulta_session", cfg.SessionTTL, cfg.IsProduction())
	metrics := observability.NewMetrics()

	activityClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init queue client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := activityClient.Close(); err != nil {
			logger.Warn("queue client close", slog.Any("error", err))
		}
	}()

	activityRepo := activities.NewRepository(dbpool)
	activityCache := querycache.New[activities.PageData](cfg.ListCacheTTL,
		cacheMetrics[activities.PageData](metrics, "activities", logger))
	activityService := activities.NewService(activityRepo, activityCache)
	activityHandler := activities.NewHandler(logger, activityService)
	activityLogger := activities.WithInvalidation(activityClient, activityService)

	userRepo := users.NewRepository(dbpool)
	userService := users.NewService(userRepo)
	userHandler := users.NewHandler(logger, userService, sessionManager, activityLogger)

	productRepo := products.NewRepository(dbpool)
	productCache := querycache.New[[]products.Product](cfg.ListCacheTTL,
		cacheMetrics[[]products.Product](metrics, "products", logger))
	productService := products.NewService(productRepo, productCache)
	productHandler := products.NewHandler(logger, productService, activityLogger)

	txRepo := transactions.NewRepository(dbpool)
	txCache := querycache.New[[]transactions.Transaction](cfg.ListCacheTTL,
		cacheMetrics[[]transactions.Transaction](metrics, "transactions", logger))
	txService := transactions.NewService(txRepo, txCache)
	txHandler := transactions.NewHandler(logger, txService, activityLogger)

	eventRepo := events.NewRepository(dbpool)
	eventCache := querycache.New[[]events.Event](cfg.ListCacheTTL,
		cacheMetrics[[]events.Event](metrics, "events", logger))
	eventService := events.NewService(eventRepo, eventCache)
	eventHandler := events.NewHandler(logger, eventService, activityLogger)

	walletRepo := wallet.NewRepository(dbpool)
	walletService := wallet.NewService(walletRepo, userRepo, txService)
	walletHandler := wallet.NewHandler(logger, walletService, activityLogger)

	pinService := pincode.NewService(userRepo)
	pinHandler := pincode.NewHandler(logger, pinService, activityLogger)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	// The scheduler in the worker process enqueues warmup tasks; they
	// are consumed here because the list caches live in this process.
	warmQuery := shared.ListQuery{Page: 1, PageSize: 10, SortDirection: shared.SortAsc}
	warmupJob := jobs.NewCacheWarmupJob(activityRepo, []jobs.Warmer{
		func(ctx context.Context, userID string) error {
			_, err := productService.List(ctx, userID, warmQuery)
			return err
		},
		func(ctx context.Context, userID string) error {
			_, err := txService.List(ctx, userID, warmQuery)
			return err
		},
		func(ctx context.Context, userID string) error {
			_, err := eventService.List(ctx, userID)
			return err
		},
		func(ctx context.Context, userID string) error {
			_, err := activityService.List(ctx, userID, warmQuery)
			return err
		},
	}, logger, jobmetrics.NewMetrics(metrics.Registerer()))

	warmupWorker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Queues:    map[string]int{jobs.QueueWarmup: 1},
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeCacheWarmup, Handler: warmupJob.Handle},
		},
	})
	if err != nil {
		logger.Error("init warmup worker", slog.Any("error", err))
		os.Exit(1)
	}
	go func() {
		if err := warmupWorker.Run(ctx); err != nil && err != context.Canceled {
			logger.Error("warmup worker", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		SessionManager:      sessionManager,
		UsersHandler:        userHandler,
		ProductsHandler:     productHandler,
		TransactionsHandler: txHandler,
		EventsHandler:       eventHandler,
		WalletHandler:       walletHandler,
		PinCodeHandler:      pinHandler,
		ActivitiesHandler:   activityHandler,
		JobHandler:          jobHandler,
		Metrics:             metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

func cacheMetrics[T any](metrics *observability.Metrics, entity string, logger *slog.Logger) querycache.Option[T] {
	m, err := querycache.NewMetrics(metrics.Registerer(), entity)
	if err != nil {
		logger.Warn("register cache metrics", slog.Any("error", err), slog.String("entity", entity))
		return func(*querycache.Cache[T]) {}
	}
	return querycache.WithMetrics[T](m)
}
