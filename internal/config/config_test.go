package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_STORE", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.App.Port)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, 900*time.Second, cfg.RateLimit.Window())
	assert.Equal(t, 10*time.Second, cfg.Email.SendTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Email.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "3")
	t.Setenv("RATE_LIMIT_WINDOW", "60")
	t.Setenv("RATE_LIMIT_STORE", "redis")
	t.Setenv("ALLOWED_HOSTS", "https://a.example,https://b.example")
	t.Setenv("EMAIL_SEND_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window())
	assert.Equal(t, "redis", cfg.RateLimit.Store)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 2*time.Second, cfg.Email.SendTimeout)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"RATE_LIMIT_REQUESTS": "0",
		"RATE_LIMIT_WINDOW":   "-1",
		"RATE_LIMIT_STORE":    "etcd",
		"SMTP_ENCRYPTION":     "starttls",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDatabaseURLHelpers(t *testing.T) {
	sqlite := DatabaseConfig{URL: "sqlite:///./leads.db"}
	assert.False(t, sqlite.IsPostgres())
	assert.Equal(t, "./leads.db", sqlite.GetSQLitePath())

	memory := DatabaseConfig{URL: "file::memory:?cache=shared"}
	assert.Equal(t, "file::memory:?cache=shared", memory.GetSQLitePath())

	pg := DatabaseConfig{URL: "postgres://u:p@db:5432/leads"}
	assert.True(t, pg.IsPostgres())
	assert.Equal(t, "postgres://u:p@db:5432/leads?sslmode=disable", pg.GetPostgresDSN())

	pgTLS := DatabaseConfig{URL: "postgresql://u:p@db/leads?sslmode=require"}
	assert.True(t, pgTLS.IsPostgres())
	assert.Equal(t, "postgresql://u:p@db/leads?sslmode=require", pgTLS.GetPostgresDSN())
}
