package main

import (
	"context"
	"github.com/berkocan/genelpara-api/deploy/config"
	fetcherApp "github.com/berkocan/genelpara-api/internal/rate_fetcher/app"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	cfg := config.NewConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := fetcherApp.NewFetcherApp(cfg)
	if err := app.Start(ctx); err != nil {
		log.Fatalln("Failed to run fetcher", "error", err)
	}

	slog.Info("fetcher stopped")
}
