package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The JWT secret validator demands at least 32 characters.
const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TASKDESK_DATABASE_URL", "postgres://localhost:5432/taskdesk")
	t.Setenv("TASKDESK_AUTH_JWT_SECRET", testSecret)
	t.Setenv("TASKDESK_SERVER_PORT", "9090")
	t.Setenv("TASKDESK_SERVER_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "postgres://localhost:5432/taskdesk", cfg.Database.URL)
	assert.Equal(t, testSecret, cfg.Auth.JWTSecret)

	// Defaults fill what the environment left out.
	assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, "./uploads", cfg.Files.Dir)
	assert.Equal(t, "30 0 * * *", cfg.Sweep.Schedule)
}

func TestLoadRejectsMissingDatabaseURL(t *testing.T) {
	t.Setenv("TASKDESK_AUTH_JWT_SECRET", testSecret)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadRejectsShortJWTSecret(t *testing.T) {
	t.Setenv("TASKDESK_DATABASE_URL", "postgres://localhost:5432/taskdesk")
	t.Setenv("TASKDESK_AUTH_JWT_SECRET", "short")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	t.Setenv("TASKDESK_DATABASE_URL", "postgres://localhost:5432/taskdesk")
	t.Setenv("TASKDESK_AUTH_JWT_SECRET", testSecret)
	t.Setenv("TASKDESK_SERVER_LOG_LEVEL", "chatty")

	_, err := Load()
	require.Error(t, err)
}
