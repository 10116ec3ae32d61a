package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dgiconsole/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Bulk.Concurrency)
	assert.Equal(t, 10*time.Second, cfg.Bulk.MaxRetryWait())
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Equal(t, "role", cfg.Auth.RoleClaim)
	assert.Equal(t, 30*time.Second, cfg.Remote.Timeout())
	assert.Equal(t, 20*time.Second, cfg.Clearance.CheckTimeout())
	assert.NotEmpty(t, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DGICONSOLE_REMOTE_BASE_URL", "https://billing.example.com/api/")
	t.Setenv("DGICONSOLE_BULK_CONCURRENCY", "8")
	t.Setenv("DGICONSOLE_BULK_MAX_RETRY_WAIT_SECS", "0")
	t.Setenv("DGICONSOLE_CORS_ALLOWED_ORIGINS", " https://a.example.com , ,https://b.example.com")
	t.Setenv("DGICONSOLE_EMAIL_PROVIDER", "ses")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://billing.example.com/api", cfg.Remote.BaseURL)
	assert.Equal(t, 8, cfg.Bulk.Concurrency)
	assert.Zero(t, cfg.Bulk.MaxRetryWait())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "ses", cfg.Email.Provider)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestLoad_ExplicitPortWinsOverPlatformPort(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DGICONSOLE_SERVER_PORT", ":7000")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Port)
}

func TestLoad_RejectsNonPositiveConcurrency(t *testing.T) {
	t.Setenv("DGICONSOLE_BULK_CONCURRENCY", "0")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/n?sslmode=disable", db.DSN())
}
