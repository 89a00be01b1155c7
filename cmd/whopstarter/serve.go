package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/whop-starter/internal/api"
	"github.com/nhle/whop-starter/internal/credential"
	"github.com/nhle/whop-starter/internal/guard"
	"github.com/nhle/whop-starter/internal/model"
	"github.com/nhle/whop-starter/internal/whop"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(load func() (*model.AppConfig, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *model.AppConfig) error {
	log := mustMakeLogger(cfg.Log.Level)

	apiKey := cfg.Whop.APIKey
	if apiKey == "" {
		vault, err := credential.Open()
		if err != nil {
			log.Warn("keyring unavailable", "error", err)
		} else if apiKey, err = credential.ResolveAPIKey(vault, apiKey); err != nil {
			return fmt.Errorf("reading api key from keyring: %w", err)
		}
	}
	if apiKey == "" {
		log.Warn("no whop api key configured; platform calls will be rejected")
	}
	if cfg.Whop.TokenPublicKey == "" {
		log.Warn("no token public key configured; every request will be unauthenticated")
	}

	client, err := whop.NewClient(whop.Config{
		APIKey:         apiKey,
		AppID:          cfg.Whop.AppID,
		BaseURL:        cfg.Whop.BaseURL,
		TokenPublicKey: cfg.Whop.TokenPublicKey,
	})
	if err != nil {
		return fmt.Errorf("creating whop client: %w", err)
	}

	db, err := openStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	deps := api.Deps{
		Guard:    guard.New(client),
		Platform: client,
		Store:    db,
	}

	server := http.Server{
		Addr:              cfg.Server.Address,
		ReadHeaderTimeout: cfg.Server.RequestTimeout,
		Handler:           api.NewRouter(log, deps, cfg.Server.RequestTimeout),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "address", server.Addr, "database", cfg.Database.Driver)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
