package apiApp

import (
	"context"
	"github.com/berkocan/genelpara-api/deploy/config"
	"github.com/berkocan/genelpara-api/internal/api_service/adapter/storage/postgres"
	"github.com/berkocan/genelpara-api/internal/api_service/adapter/storage/redis"
	"github.com/berkocan/genelpara-api/internal/api_service/ports/http/public"
	"github.com/berkocan/genelpara-api/internal/api_service/service"
	"github.com/berkocan/genelpara-api/internal/rate_fetcher/adapter/api_client/genelpara"
	redisPack "github.com/redis/go-redis/v9"
	"log/slog"
	"os"
)

type ApiApp struct {
	cfg *config.Config

	pgStorage *postgres.Storage
	rdStorage *redis.Storage
}

func NewApiApp(cfg *config.Config) *ApiApp {
	return &ApiApp{cfg: cfg}
}

// Start brings up storages and the HTTP server. The returned channel is closed once the
// server has shut down after ctx is cancelled.
func (a *ApiApp) Start(ctx context.Context) (<-chan struct{}, error) {
	a.initLogger()
	slog.Info("Logger initialized")

	slog.Info("starting server", "config", a.cfg)

	if err := a.initDatabase(ctx); err != nil {
		return nil, err
	}
	slog.Info("Storage initialized")

	if err := a.initRedis(ctx); err != nil {
		a.pgStorage.Close()
		return nil, err
	}
	slog.Info("Redis client initialized")

	apiService := a.initService()
	slog.Info("Service initialized")

	serverDone := public.StartServer(ctx, apiService, a.cfg.HTTPServer, a.pgStorage, a.rdStorage)
	slog.Info("server started", "port", a.cfg.HTTPServer.Port)

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-serverDone

		a.pgStorage.Close()
		if err := a.rdStorage.Close(); err != nil {
			slog.Error("Failed to close redis", "error", err)
		}
	}()

	return done, nil
}

func (a *ApiApp) initLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     a.cfg.Log.SlogLevel(),
		AddSource: false,
	}))
	slog.SetDefault(logger)
}

func (a *ApiApp) initDatabase(ctx context.Context) error {
	pgStorage, err := postgres.InitStorage(ctx, a.cfg.Storage.DSN(), a.cfg.Storage.Timeout)
	if err != nil {
		slog.Error("Failed to initialize PostgresSQL storage", "error", err)
		return err
	}

	a.pgStorage = pgStorage

	return nil
}

func (a *ApiApp) initRedis(ctx context.Context) error {
	options := &redisPack.Options{
		Addr:     a.cfg.Redis.Host,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	}

	rdStorage, err := redis.InitStorage(ctx, options, a.cfg.Redis.TTL)
	if err != nil {
		slog.Error("Failed to initialize Redis storage", "error", err)
		return err
	}

	a.rdStorage = rdStorage

	return nil
}

func (a *ApiApp) initService() *service.Service {
	client := genelpara.NewClient(
		genelpara.WithBaseURL(a.cfg.Client.BaseURL),
		genelpara.WithHTTPClient(genelpara.NewHTTPClient(a.cfg.Client.Timeout)),
	)

	return service.NewService(client, a.rdStorage, a.pgStorage, a.cfg.Client.Timeout)
}
