package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	// Address is the listen address (e.g., ":3000").
	Address string `mapstructure:"address" yaml:"address"`

	// RequestTimeout bounds each handler's calls to the platform and the database.
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
}

// WhopConfig holds the credentials and endpoints for the Whop platform.
type WhopConfig struct {
	// APIKey authenticates server-side API calls. Never written to disk by
	// SaveConfig; store it in the keyring instead.
	APIKey string `mapstructure:"api_key" yaml:"-"`

	// AppID is the app identifier; when set, user tokens must carry it as audience.
	AppID string `mapstructure:"app_id" yaml:"app_id"`

	// BaseURL is the root of the REST API.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TokenPublicKey is the PEM encoded ES256 key that signs user tokens.
	TokenPublicKey string `mapstructure:"token_public_key" yaml:"token_public_key"`
}

// DatabaseConfig selects the SQL driver and data source.
type DatabaseConfig struct {
	// Driver is "sqlite" or "pgx".
	Driver string `mapstructure:"driver" yaml:"driver"`
	DSN    string `mapstructure:"dsn" yaml:"dsn"`
}

// LogConfig holds logging preferences.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Whop     WhopConfig     `mapstructure:"whop" yaml:"whop"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// Default values.
const (
	DefaultServerAddress  = ":3000"
	DefaultRequestTimeout = 10 * time.Second
	DefaultWhopBaseURL    = "https://api.whop.com/api/v1"
	DefaultDatabaseDriver = "sqlite"
	DefaultLogLevel       = "info"
)

// envBindings maps config keys to the environment variables that override
// them. The first variable found wins.
var envBindings = map[string][]string{
	"server.address":         {"WHOPSTARTER_ADDRESS"},
	"server.request_timeout": {"WHOPSTARTER_REQUEST_TIMEOUT"},
	"whop.api_key":           {"WHOP_API_KEY"},
	"whop.app_id":            {"WHOP_APP_ID", "NEXT_PUBLIC_WHOP_APP_ID"},
	"whop.base_url":          {"WHOP_BASE_URL"},
	"whop.token_public_key":  {"WHOP_TOKEN_PUBLIC_KEY"},
	"database.driver":        {"DATABASE_DRIVER"},
	"database.dsn":           {"DATABASE_URL"},
	"log.level":              {"LOG_LEVEL"},
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/whopstarter/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "whopstarter", "config.yaml")
}

// DefaultDatabasePath returns the default SQLite file location,
// next to the configuration file.
func DefaultDatabasePath() string {
	return filepath.Join(filepath.Dir(DefaultConfigPath()), "whopstarter.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Address:        DefaultServerAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Whop: WhopConfig{
			BaseURL: DefaultWhopBaseURL,
		},
		Database: DatabaseConfig{
			Driver: DefaultDatabaseDriver,
			DSN:    DefaultDatabasePath(),
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper
// and applies environment overrides. A missing file is not an error.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	defaults := defaultAppConfig()
	v.SetDefault("server.address", defaults.Server.Address)
	v.SetDefault("server.request_timeout", defaults.Server.RequestTimeout)
	v.SetDefault("whop.base_url", defaults.Whop.BaseURL)
	v.SetDefault("database.driver", defaults.Database.Driver)
	v.SetDefault("database.dsn", defaults.Database.DSN)
	v.SetDefault("log.level", defaults.Log.Level)

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed. The API key is omitted.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("server.address", cfg.Server.Address)
	v.Set("server.request_timeout", cfg.Server.RequestTimeout.String())
	v.Set("whop.app_id", cfg.Whop.AppID)
	v.Set("whop.base_url", cfg.Whop.BaseURL)
	v.Set("whop.token_public_key", cfg.Whop.TokenPublicKey)
	v.Set("database.driver", cfg.Database.Driver)
	v.Set("database.dsn", cfg.Database.DSN)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
