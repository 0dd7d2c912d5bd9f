package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/spotifeel/internal/repositories"
	"github.com/desertthunder/spotifeel/internal/server"
	"github.com/desertthunder/spotifeel/internal/services"
	"github.com/desertthunder/spotifeel/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"
)

// Burst-capped limit applied to the /auth/ routes.
const (
	authRateLimit = 5
	authRateBurst = 10
)

// Serve starts the HTTP backend and blocks until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, err := shared.LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	service, err := services.NewSpotifyService(map[string]string{
		"client_id":     config.Spotify.ClientID,
		"client_secret": config.Spotify.ClientSecret,
		"redirect_uri":  config.Spotify.RedirectURI,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}

	store := repositories.NewTokenStore(config.Tokens.Dir)

	router := server.NewBasicRouter()
	router.Use(
		server.RequestLogger(r.logger),
		server.RateLimit(rate.NewLimiter(rate.Limit(authRateLimit), authRateBurst)),
	)
	router.Handler(server.NewAuthHandler(service, store, r.logger))
	router.Handler(server.NewUserHandler(service, store, r.logger))
	router.Handler(&server.MetaHandler{})

	httpServer := &http.Server{
		Addr:    config.Server.Addr(),
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting spotifeel backend at %v", config.Server.Addr())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	baseURL := fmt.Sprintf("http://%s", config.Server.Addr())
	r.writePlain("%s\n", r.styles.Title("spotifeel backend"))
	r.writePlain("%s %s\n", r.styles.OK("→ listening at"), baseURL)
	r.writePlain("%s\n", r.styles.Help(fmt.Sprintf("login: %s/auth/login  tokens: %s", baseURL, config.Tokens.Dir)))

	if cmd.Bool("open") {
		if err := shared.OpenBrowser(baseURL + "/auth/login"); err != nil {
			r.logger.Warnf("failed to open browser automatically %v", err)
		}
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
		r.logger.Info("shutdown signal received")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	return nil
}
