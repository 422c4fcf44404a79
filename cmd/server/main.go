package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	webAdapter "backoffice/internal/adapters/web"
	"backoffice/internal/app"
	"backoffice/internal/config"
	"backoffice/internal/logging"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)
	logger := logging.Logger(logging.SourceApp)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, closeBackend, err := app.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to open backend", "err", err)
	}
	defer closeBackend()

	if err := webAdapter.Serve(ctx, cfg, svc); err != nil {
		logger.Error("server exited", "err", err)
		closeBackend()
		os.Exit(1)
	}
}
