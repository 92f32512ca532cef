package main

import (
	"context"
	"github.com/berkocan/genelpara-api/deploy/config"
	apiApp "github.com/berkocan/genelpara-api/internal/api_service/app"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	cfg := config.NewConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := apiApp.NewApiApp(cfg)
	serverDone, err := app.Start(ctx)
	if err != nil {
		log.Fatalln("Failed to start api service", "error", err)
	}

	done := make(chan os.Signal, 1)

	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-done
	slog.Info("Gracefully shutting down")

	cancel()
	slog.Info("stopping server")

	<-serverDone
	slog.Info("server stopped")
}
