package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Email     EmailConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// AppConfig holds application-level configuration
type AppConfig struct {
	Name        string `env:"APP_NAME" envDefault:"Ukunahi AI"`
	Version     string `env:"APP_VERSION" envDefault:"1.0.0"`
	URL         string `env:"APP_URL" envDefault:"http://localhost:8000"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	Debug       bool   `env:"DEBUG" envDefault:"false"`
	Port        string `env:"PORT" envDefault:"8000"`
	Host        string `env:"HOST" envDefault:"0.0.0.0"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string `env:"DATABASE_URL" envDefault:"sqlite:///./leads.db"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_HOSTS" envSeparator:"," envDefault:"*"`
	AllowedMethods []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,PUT,OPTIONS"`
	AllowedHeaders []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,X-Request-ID"`
	MaxAge         int      `env:"CORS_MAX_AGE" envDefault:"86400"`
}

// EmailConfig holds email service configuration
type EmailConfig struct {
	Enabled     bool          `env:"EMAIL_ENABLED" envDefault:"false"`
	SMTPHost    string        `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort    int           `env:"SMTP_PORT" envDefault:"587"`
	Username    string        `env:"SMTP_USERNAME"`
	Password    string        `env:"SMTP_PASSWORD"`
	Encryption  string        `env:"SMTP_ENCRYPTION" envDefault:"tls"` // tls (STARTTLS) or ssl
	FromEmail   string        `env:"EMAIL_FROM" envDefault:"noreply@ukunahi.ai"`
	FromName    string        `env:"EMAIL_FROM_NAME" envDefault:"Ukunahi AI"`
	AdminEmail  string        `env:"ADMIN_EMAIL" envDefault:"admin@ukunahi.ai"`
	AdminName   string        `env:"ADMIN_NAME" envDefault:"Ukunahi AI Team"`
	SendTimeout time.Duration `env:"EMAIL_SEND_TIMEOUT" envDefault:"10s"`
}

// RateLimitConfig holds the per-IP limiter configuration
type RateLimitConfig struct {
	Enabled       bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	Requests      int    `env:"RATE_LIMIT_REQUESTS" envDefault:"100"`
	WindowSeconds int    `env:"RATE_LIMIT_WINDOW" envDefault:"900"`
	Store         string `env:"RATE_LIMIT_STORE" envDefault:"badger"` // badger, redis, memory
	Path          string `env:"RATE_LIMIT_PATH" envDefault:"./storage/rate_limits"`
	RedisURL      string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	TrustProxy    bool   `env:"TRUST_PROXY_HEADERS" envDefault:"false"`
}

// Window returns the limiter window as a duration.
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level      string `env:"LOG_LEVEL" envDefault:"info"`
	Format     string `env:"LOG_FORMAT" envDefault:"json"` // json or text
	File       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"100"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"5"`
	MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"28"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.App.Port == "" {
		return fmt.Errorf("PORT must be set")
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}
	if cfg.RateLimit.Requests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be greater than 0")
	}
	if cfg.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be greater than 0")
	}
	switch cfg.RateLimit.Store {
	case "badger", "redis", "memory":
	default:
		return fmt.Errorf("RATE_LIMIT_STORE must be one of badger, redis, memory")
	}
	switch cfg.Email.Encryption {
	case "tls", "ssl", "none":
	default:
		return fmt.Errorf("SMTP_ENCRYPTION must be one of tls, ssl, none")
	}
	if cfg.Email.SendTimeout <= 0 {
		return fmt.Errorf("EMAIL_SEND_TIMEOUT must be greater than 0")
	}
	if cfg.Email.Enabled && (cfg.Email.SMTPHost == "" || cfg.Email.AdminEmail == "") {
		return fmt.Errorf("SMTP_HOST and ADMIN_EMAIL must be set when EMAIL_ENABLED is true")
	}
	return nil
}

// IsPostgres checks if the database URL is for PostgreSQL
func (c *DatabaseConfig) IsPostgres() bool {
	return strings.HasPrefix(c.URL, "postgres://") || strings.HasPrefix(c.URL, "postgresql://")
}

// GetPostgresDSN returns the connection string handed to the pgx driver.
// pgx accepts both URL and key=value forms, so the URL is passed through with
// sslmode defaulting to disable.
func (c *DatabaseConfig) GetPostgresDSN() string {
	url := c.URL
	if strings.Contains(url, "sslmode=") {
		return url
	}
	if strings.Contains(url, "?") {
		return url + "&sslmode=disable"
	}
	return url + "?sslmode=disable"
}

// GetSQLitePath extracts SQLite database path from URL
func (c *DatabaseConfig) GetSQLitePath() string {
	url := c.URL
	if strings.HasPrefix(url, "sqlite:///") {
		return url[len("sqlite:///"):]
	}
	return strings.TrimPrefix(url, "sqlite://")
}
