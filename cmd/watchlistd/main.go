package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"animetracker/internal/catalog"
	"animetracker/internal/catalog/anilist"
	"animetracker/internal/catalog/cache"
	"animetracker/internal/config"
	"animetracker/internal/httpapi"
	"animetracker/internal/publisher"
	"animetracker/internal/scheduler"
	"animetracker/internal/service"
	"animetracker/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	if err := run(cfg, logger); err != nil {
		logger.Error("watchlistd stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return err
	}
	logger.Info("connected to database")

	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}

	var events service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			return err
		}
		defer rabbitMQ.Close()
		events = rabbitMQ
	}

	entries := postgres.NewWatchlistStore(db)
	airingState := postgres.NewAiringStateStore(db)
	txManager := postgres.NewTransactionManager(db)

	watchlistService := service.NewWatchlistService(entries, txManager, events, logger)

	handler := httpapi.NewHandler(watchlistService, entries, logger)
	router := httpapi.NewRouter(handler, httpapi.Config{
		RateLimit:  cfg.HTTP.RateLimit,
		RateWindow: cfg.HTTP.RateWindow,
		JWTSecret:  cfg.Auth.JWTSecret,
	}, logger)

	var sched *scheduler.Scheduler
	if cfg.Airing.Enabled {
		source, err := catalogSource(ctx, cfg, logger)
		if err != nil {
			return err
		}
		if closer, ok := source.(io.Closer); ok {
			defer closer.Close()
		}
		if events == nil {
			logger.Warn("airing checks enabled without rabbitmq, notifications are dropped")
		}

		airing := service.NewAiringService(source, entries, airingState, events, logger)
		sched = scheduler.NewScheduler(airing, cfg.Airing.Interval, cfg.Airing.Timeout, logger)
	}

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down http server")
		return server.Shutdown(shutdownCtx)
	})

	if sched != nil {
		g.Go(func() error {
			if err := sched.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	return g.Wait()
}

// catalogSource builds the AniList client, fronted by Redis when enabled.
// The cached source owns its Redis client and must be closed.
func catalogSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (catalog.Source, error) {
	client := anilist.New(anilist.Config{
		BaseURL:        cfg.AniList.BaseURL,
		PageSize:       cfg.AniList.PageSize,
		Timeout:        cfg.AniList.Timeout,
		MaxAttempts:    cfg.AniList.Retry.MaxAttempts,
		InitialBackoff: cfg.AniList.Retry.InitialBackoff,
		MaxBackoff:     cfg.AniList.Retry.MaxBackoff,
	}, logger)

	if !cfg.Redis.Enabled {
		return client, nil
	}

	rdb, err := cache.Connect(ctx, cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("catalog cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	return cache.New(client, rdb, cfg.Redis.TTL, logger), nil
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
