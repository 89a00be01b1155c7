package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nhle/whop-starter/internal/model"
	"github.com/nhle/whop-starter/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "whopstarter",
		Short:        "Multi-tenant Whop app starter: HTTP pages, counter, todos and users",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", model.DefaultConfigPath(), "configuration file")

	load := func() (*model.AppConfig, error) {
		if err := loadDotEnv(".env.local", ".env"); err != nil {
			return nil, err
		}
		return model.LoadConfig(configPath)
	}

	root.AddCommand(
		newServeCmd(load),
		newConsoleCmd(load),
		newCredentialsCmd(),
		newConfigCmd(&configPath, load),
	)
	return root
}

// loadDotEnv loads each file that exists. Earlier files win because
// godotenv never overrides variables that are already set.
func loadDotEnv(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", file, err)
		}
	}
	return nil
}

func mustMakeLogger(logLevel string) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openStore connects to the configured database, creating the directory
// of a SQLite file when needed.
func openStore(ctx context.Context, cfg model.DatabaseConfig) (*store.SQLStore, error) {
	if cfg.Driver == store.DriverSQLite && cfg.DSN != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DSN), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	return store.Open(ctx, cfg.Driver, cfg.DSN)
}
