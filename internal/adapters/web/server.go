package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"backoffice/internal/app"
	"backoffice/internal/config"
	"backoffice/internal/logging"
)

// Serve runs the HTTP API until ctx is cancelled, then drains in-flight
// requests for at most cfg.ShutdownTimeout.
func Serve(ctx context.Context, cfg *config.Config, svc app.ApplicationService) error {
	logger := logging.Logger(logging.SourceWeb)

	handlerCtx, stopHandler := context.WithCancel(context.Background())
	defer stopHandler()

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: NewHandler(handlerCtx, svc, Options{
			AllowedOrigins: cfg.AllowedOrigins,
			JWTSecret:      cfg.JWTSecret,
			AuthDisabled:   cfg.AuthDisabled,
			RateLimit:      cfg.RateLimit,
			ExposeErrors:   cfg.IsDevelopment(),
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          logging.StdLogger(logging.SourceWeb),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "backend", cfg.DataBackend, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
