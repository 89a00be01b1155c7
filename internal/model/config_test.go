package model

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearConfigEnv blanks every bound variable so the host environment
// cannot leak into assertions.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, envs := range envBindings {
		for _, env := range envs {
			t.Setenv(env, "")
		}
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	clearConfigEnv(t)
	path := filepath.Join(t.TempDir(), "missing.yaml")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Address != DefaultServerAddress {
		t.Errorf("address = %q, want %q", cfg.Server.Address, DefaultServerAddress)
	}
	if cfg.Server.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("timeout = %v, want %v", cfg.Server.RequestTimeout, DefaultRequestTimeout)
	}
	if cfg.Whop.BaseURL != DefaultWhopBaseURL {
		t.Errorf("base url = %q", cfg.Whop.BaseURL)
	}
	if cfg.Database.Driver != DefaultDatabaseDriver {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	clearConfigEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  address: ":8080"
  request_timeout: 3s
whop:
  app_id: app_from_file
database:
  driver: sqlite
  dsn: ":memory:"
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv("WHOP_API_KEY", "key_from_env")
	t.Setenv("NEXT_PUBLIC_WHOP_APP_ID", "app_from_env")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Address != ":8080" {
		t.Errorf("address = %q", cfg.Server.Address)
	}
	if cfg.Server.RequestTimeout != 3*time.Second {
		t.Errorf("timeout = %v", cfg.Server.RequestTimeout)
	}
	if cfg.Whop.APIKey != "key_from_env" {
		t.Errorf("api key = %q", cfg.Whop.APIKey)
	}
	if cfg.Whop.AppID != "app_from_env" {
		t.Errorf("app id = %q, env should win over file", cfg.Whop.AppID)
	}
	if cfg.Database.DSN != ":memory:" {
		t.Errorf("dsn = %q", cfg.Database.DSN)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestSaveConfigRoundTripOmitsAPIKey(t *testing.T) {
	clearConfigEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := defaultAppConfig()
	cfg.Whop.APIKey = "secret"
	cfg.Whop.AppID = "app_123"
	cfg.Server.Address = ":9999"

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Whop.AppID != "app_123" || loaded.Server.Address != ":9999" {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
	if loaded.Whop.APIKey != "" {
		t.Fatalf("api key leaked into config file")
	}
}
