package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Log      LogConfig
	Upload   UploadConfig
	Admin    AdminConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig controls the logrus logger built at startup.
type LogConfig struct {
	Level  string
	Format string // "text" or "json"
}

// UploadConfig limits the size of uploaded holdings files.
type UploadConfig struct {
	MaxBytes int64
}

// AdminConfig protects the delete endpoints when APIKey is set.
type AdminConfig struct {
	APIKey string
}

// Load reads configuration from environment variables and .env file.
// Keys map to upper-case environment variables, e.g. "server.port" -> SERVER_PORT.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("server.port", "5001")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("db.path", "./data/fund_holdings.db")
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://localhost")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("upload.max_bytes", 32<<20)
	v.SetDefault("admin.api_key", "")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	config := &Config{
		Server: ServerConfig{
			Port: v.GetString("server.port"),
			Host: v.GetString("server.host"),
		},
		Database: DatabaseConfig{
			Path: v.GetString("db.path"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: strings.ToLower(v.GetString("log.format")),
		},
		Upload: UploadConfig{
			MaxBytes: v.GetInt64("upload.max_bytes"),
		},
		Admin: AdminConfig{
			APIKey: v.GetString("admin.api_key"),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Server.Port) == "" {
		return errors.New("SERVER_PORT must not be empty")
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("DB_PATH must not be empty")
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive, got %d", c.Upload.MaxBytes)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// splitList splits a comma separated value, dropping blanks.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
