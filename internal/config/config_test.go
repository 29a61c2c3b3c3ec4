package config

import (
	"testing"
)

func TestLoad(t *testing.T) {
	t.Run("uses defaults when nothing is set", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}

		if cfg.Server.Addr != "localhost:5001" {
			t.Errorf("Expected addr 'localhost:5001', got '%s'", cfg.Server.Addr)
		}
		if cfg.Database.Path != "./data/fund_holdings.db" {
			t.Errorf("Expected default db path, got '%s'", cfg.Database.Path)
		}
		if len(cfg.CORS.AllowedOrigins) != 2 {
			t.Errorf("Expected 2 default origins, got %v", cfg.CORS.AllowedOrigins)
		}
		if cfg.Upload.MaxBytes != 32<<20 {
			t.Errorf("Expected 32MiB upload limit, got %d", cfg.Upload.MaxBytes)
		}
		if cfg.Admin.APIKey != "" {
			t.Errorf("Expected no admin key by default, got '%s'", cfg.Admin.APIKey)
		}
	})

	t.Run("reads environment overrides", func(t *testing.T) {
		t.Setenv("SERVER_HOST", "0.0.0.0")
		t.Setenv("SERVER_PORT", "8080")
		t.Setenv("DB_PATH", "/tmp/holdings.db")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "JSON")
		t.Setenv("UPLOAD_MAX_BYTES", "1024")
		t.Setenv("ADMIN_API_KEY", "secret")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}

		if cfg.Server.Addr != "0.0.0.0:8080" {
			t.Errorf("Expected addr '0.0.0.0:8080', got '%s'", cfg.Server.Addr)
		}
		if cfg.Database.Path != "/tmp/holdings.db" {
			t.Errorf("Expected db path override, got '%s'", cfg.Database.Path)
		}
		if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
			t.Errorf("Unexpected origins: %v", cfg.CORS.AllowedOrigins)
		}
		if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
			t.Errorf("Unexpected log config: %+v", cfg.Log)
		}
		if cfg.Upload.MaxBytes != 1024 {
			t.Errorf("Expected upload limit 1024, got %d", cfg.Upload.MaxBytes)
		}
		if cfg.Admin.APIKey != "secret" {
			t.Errorf("Expected admin key 'secret', got '%s'", cfg.Admin.APIKey)
		}
	})

	t.Run("rejects unknown log format", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "xml")

		if _, err := Load(); err == nil {
			t.Error("Expected error for unknown log format, got nil")
		}
	})

	t.Run("rejects non positive upload limit", func(t *testing.T) {
		t.Setenv("UPLOAD_MAX_BYTES", "0")

		if _, err := Load(); err == nil {
			t.Error("Expected error for zero upload limit, got nil")
		}
	})
}
