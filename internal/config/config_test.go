package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Address != ":8080" {
		t.Fatalf("server.address: got=%q", cfg.Server.Address)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.DSN != "exercicios.db" {
		t.Fatalf("unexpected database defaults: %+v", cfg.Database)
	}
	if len(cfg.CORS.AllowOrigins) != 0 {
		t.Fatalf("expected no CORS origins, got %v", cfg.CORS.AllowOrigins)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`server:
  address: ":9090"
database:
  driver: Postgres
  dsn: "postgres://u:p@localhost:5432/exercicios"
cors:
  allow_origins:
    - "http://localhost:3000"
`)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LOG_MODE", "production")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Address != ":9090" {
		t.Fatalf("server.address: got=%q", cfg.Server.Address)
	}
	if cfg.Database.Driver != "postgres" {
		t.Fatalf("driver not normalised: %q", cfg.Database.Driver)
	}
	if cfg.Log.Mode != "production" {
		t.Fatalf("log.mode from env: got=%q", cfg.Log.Mode)
	}
	if len(cfg.CORS.AllowOrigins) != 1 || cfg.CORS.AllowOrigins[0] != "http://localhost:3000" {
		t.Fatalf("cors origins: %v", cfg.CORS.AllowOrigins)
	}
}
