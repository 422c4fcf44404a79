package main

import (
	"context"
	"fmt"

	"backoffice/internal/adapters/web"
	"backoffice/internal/app"
	"backoffice/internal/config"
	"backoffice/internal/logging"

	"github.com/urfave/cli/v3"
)

var cmdServe = &cli.Command{
	Name:    "serve",
	Aliases: []string{"start"},
	Usage:   "Start the HTTP API",
	Action:  serve,
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	svc, closeBackend, err := app.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open backend: %w", err)
	}
	defer closeBackend()

	return web.Serve(ctx, cfg, svc)
}

// openStore loads the configuration for one-shot commands and opens the
// configured backend.
func openStore(ctx context.Context) (app.ApplicationService, func(), error) {
	cfg := config.Load()
	if err := cfg.ValidateStore(); err != nil {
		return nil, nil, err
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	svc, closeBackend, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open backend: %w", err)
	}
	return svc, closeBackend, nil
}
