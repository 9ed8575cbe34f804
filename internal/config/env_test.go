package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseEnv_AllSections verifies env variable mapping across sections.
func TestParseEnv_AllSections(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "secret")
	t.Setenv("APP_TOKEN_ISSUER", "portal")
	t.Setenv("APP_TOKEN_DURATION", "45m")
	t.Setenv("SESSIONS_TTL", "12h")
	t.Setenv("SESSIONS_LOGIN_URL", "/signin")
	t.Setenv("STORAGE_DB_DRIVER", "sqlite")
	t.Setenv("STORAGE_DB_DATABASE_URI", "portal.db")
	t.Setenv("STORAGE_FILES_DOCUMENTS_DIR", "/srv/docs")
	t.Setenv("SERVER_ADDRESS", "0.0.0.0:9999")
	t.Setenv("WORKERS_REAP_INTERVAL", "5m")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "secret", cfg.App.TokenSignKey)
	assert.Equal(t, "portal", cfg.App.TokenIssuer)
	assert.Equal(t, 45*time.Minute, cfg.App.TokenDuration)
	assert.Equal(t, 12*time.Hour, cfg.Sessions.TTL)
	assert.Equal(t, "/signin", cfg.Sessions.LoginURL)
	assert.Equal(t, "sqlite", cfg.Storage.DB.Driver)
	assert.Equal(t, "portal.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/srv/docs", cfg.Storage.Files.DocumentsDir)
	assert.Equal(t, "0.0.0.0:9999", cfg.Server.HTTPAddress)
	assert.Equal(t, 5*time.Minute, cfg.Workers.ReapInterval)
}

// TestParseEnv_BadDuration verifies that malformed durations produce an error.
func TestParseEnv_BadDuration(t *testing.T) {
	t.Setenv("APP_TOKEN_DURATION", "not-a-duration")

	cfg := &StructuredConfig{}
	assert.Error(t, parseEnv(cfg))
}
