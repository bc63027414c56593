package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/nguyenvanlong0501/job-portal/config"
	httpx "github.com/nguyenvanlong0501/job-portal/internal/http"
)

// HTTPServerConfig contains dependencies for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Logger   *slog.Logger
}

// BuildHTTPServer assembles the router over the service container.
func BuildHTTPServer(cfg HTTPServerConfig) *http.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	handler := httpx.NewRouter(httpx.RouterServices{
		Accounts:     cfg.Services.Accounts,
		Jobs:         cfg.Services.Jobs,
		Applications: cfg.Services.Applications,
		Admin:        cfg.Services.Admin,
		Auth:         cfg.Services.Tokens,
		Tokens:       cfg.Services.Tokens,
		AdminLogin: httpx.AdminCredentials{
			Email:    cfg.Config.Auth.AdminEmail,
			Password: cfg.Config.Auth.AdminPassword,
		},
		Logger: logger,
	})

	return &http.Server{
		Addr:         cfg.Config.HTTP.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Config.HTTP.ReadTimeout,
		WriteTimeout: cfg.Config.HTTP.WriteTimeout,
		IdleTimeout:  2 * cfg.Config.HTTP.ReadTimeout,
	}
}

// ServeHTTP runs the server until ctx is canceled or SIGINT/SIGTERM arrives,
// then drains connections within the configured shutdown timeout.
func ServeHTTP(ctx context.Context, server *http.Server, cfg HTTPServerConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Config.HTTP.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
