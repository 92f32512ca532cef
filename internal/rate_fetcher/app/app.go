package fetcherApp

import (
	"context"
	"errors"
	"github.com/berkocan/genelpara-api/deploy/config"
	"github.com/berkocan/genelpara-api/internal/rate_fetcher/adapter/api_client/genelpara"
	"github.com/berkocan/genelpara-api/internal/rate_fetcher/adapter/storage/postgres"
	"github.com/berkocan/genelpara-api/internal/rate_fetcher/adapter/storage/redis"
	"github.com/berkocan/genelpara-api/internal/rate_fetcher/fetcher"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redisPack "github.com/redis/go-redis/v9"
	"log/slog"
	"net/http"
	"os"
	"time"
)

type FetcherApp struct {
	cfg *config.Config
}

func NewFetcherApp(cfg *config.Config) *FetcherApp {
	return &FetcherApp{cfg: cfg}
}

// Start blocks until ctx is cancelled or a dependency fails to come up.
func (a *FetcherApp) Start(ctx context.Context) error {
	a.initLogger()
	slog.Info("Logger initialized")

	slog.Info("starting application", "config", a.cfg)

	pgStorage, err := a.initDatabase(ctx)
	if err != nil {
		return err
	}
	defer pgStorage.Close()
	slog.Info("Storage initialized")

	rdStorage, err := a.initRedis(ctx)
	if err != nil {
		return err
	}
	defer rdStorage.Close()
	slog.Info("Redis client initialized")

	client := a.initClient()
	slog.Info("HTTP client initialized")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	metricsDone := a.startMetrics(ctx)

	err = a.initFetcher(ctx, client, pgStorage, rdStorage)

	cancel()
	<-metricsDone

	return err
}

func (a *FetcherApp) initLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     a.cfg.Log.SlogLevel(),
		AddSource: false,
	}))
	slog.SetDefault(logger)
}

func (a *FetcherApp) initDatabase(ctx context.Context) (*postgres.Storage, error) {
	pgStorage, err := postgres.InitStorage(ctx, a.cfg.Storage.DSN())
	if err != nil {
		slog.Error("Failed to initialize PostgresSQL storage", "error", err)
		return nil, err
	}

	if err = pgStorage.InitSchema(ctx); err != nil {
		pgStorage.Close()
		slog.Error("Failed to create schema", "error", err)
		return nil, err
	}

	return pgStorage, nil
}

func (a *FetcherApp) initRedis(ctx context.Context) (*redis.Storage, error) {
	options := &redisPack.Options{
		Addr:     a.cfg.Redis.Host,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	}

	rdStorage, err := redis.InitStorage(ctx, options, a.cfg.Redis.TTL)
	if err != nil {
		slog.Error("Failed to initialize Redis storage", "error", err)
		return nil, err
	}

	return rdStorage, nil
}

func (a *FetcherApp) initClient() *genelpara.Client {
	return genelpara.NewClient(
		genelpara.WithBaseURL(a.cfg.Client.BaseURL),
		genelpara.WithHTTPClient(genelpara.NewHTTPClient(a.cfg.Client.Timeout)),
	)
}

func (a *FetcherApp) startMetrics(ctx context.Context) <-chan struct{} {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              ":" + a.cfg.Fetcher.MetricsPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan struct{})

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server error", "error", err)
		}
	}()

	go func() {
		defer close(done)
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to stop metrics server", "error", err)
		}
	}()

	return done
}

func (a *FetcherApp) initFetcher(ctx context.Context, client fetcher.RateClient, storages ...fetcher.Storage) error {
	fetch := fetcher.NewFetcher(client, a.cfg.Fetcher.Query(), a.cfg.Fetcher.TimeTickers, a.cfg.Client.Timeout, storages...)

	slog.Info("starting fetcher", "query", a.cfg.Fetcher.Query().Key(), "interval", a.cfg.Fetcher.TimeTickers)

	if err := fetch.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Failed to fetcher", "error", err)
		return err
	}

	return nil
}
