package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "file::memory:")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_URL", "postgres://localhost/gradewise")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8085", cfg.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, time.Duration(0), cfg.Auth.TokenTTL)
	assert.Equal(t, "@every 1h", cfg.Goals.SweepSchedule)
	assert.Contains(t, cfg.HTTP.AllowedOrigins, "http://localhost:3000")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("TOKEN_TTL", "24h")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("CLIENT_URL", "https://app.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Contains(t, cfg.HTTP.AllowedOrigins, "https://app.example")
	assert.Contains(t, cfg.HTTP.AllowedOrigins, "https://a.example")
	assert.Contains(t, cfg.HTTP.AllowedOrigins, "https://b.example")
}

func TestLoad_UnsupportedDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_URL", "x")
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	require.Error(t, err)
}

func TestString_MasksSecret(t *testing.T) {
	cfg := &Config{Port: "1", Auth: AuthConfig{JWTSecret: "topsecret"}}
	assert.False(t, strings.Contains(cfg.String(), "topsecret"))
}

func TestLoadClient(t *testing.T) {
	t.Setenv("GRADEWISE_API_URL", "http://api.example/api/")
	t.Setenv("GRADEWISE_SESSION", "/tmp/session.json")

	cfg, err := LoadClient()
	require.NoError(t, err)
	assert.Equal(t, "http://api.example/api", cfg.APIURL)
	assert.Equal(t, "/tmp/session.json", cfg.SessionPath)
	assert.Equal(t, "warn", cfg.LogLevel)
}
