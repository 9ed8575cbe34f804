package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// TestParseJSON_FullConfig verifies JSON mapping including string durations.
func TestParseJSON_FullConfig(t *testing.T) {
	path := writeTempJSON(t, `{
		"app": {
			"token_sign_key": "sign-key",
			"token_issuer": "portal",
			"token_duration": "2h",
			"admin_login": "root"
		},
		"sessions": {
			"ttl": "48h",
			"cookie_secure": true,
			"login_url": "/login",
			"login_redirect_url": "/home",
			"logout_redirect_url": "/bye"
		},
		"storage": {
			"db": {"driver": "postgres", "dsn": "postgres://localhost/portal"},
			"files": {"documents_dir": "/srv/docs"}
		},
		"server": {"http_address": "localhost:8081", "request_timeout": "20s"}
	}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "sign-key", cfg.App.TokenSignKey)
	assert.Equal(t, 2*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "root", cfg.App.AdminLogin)
	assert.Equal(t, 48*time.Hour, cfg.Sessions.TTL)
	assert.True(t, cfg.Sessions.CookieSecure)
	assert.Equal(t, "/home", cfg.Sessions.LoginRedirectURL)
	assert.Equal(t, "postgres://localhost/portal", cfg.Storage.DB.DSN)
	assert.Equal(t, "/srv/docs", cfg.Storage.Files.DocumentsDir)
	assert.Equal(t, "localhost:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, 20*time.Second, cfg.Server.RequestTimeout)
}

// TestParseJSON_MissingFile verifies the error path for a missing file.
func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON("/nonexistent/config.json")
	assert.Error(t, err)
}

// TestParseJSON_MalformedJSON verifies the error path for a corrupt file.
func TestParseJSON_MalformedJSON(t *testing.T) {
	path := writeTempJSON(t, `{"app": `)
	_, err := parseJSON(path)
	assert.Error(t, err)
}

// TestDuration_UnmarshalJSON covers the supported duration encodings.
func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"string form → parsed", `"90s"`, 90 * time.Second, false},
		{"number form → nanoseconds", `1000000000`, time.Second, false},
		{"garbage string → error", `"soon"`, 0, true},
		{"bool → error", `true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}
