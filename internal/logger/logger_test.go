package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// ── NewLogger ───────────────────────────────────────────────────────────────

func TestNewLogger_NotNil(t *testing.T) {
	l := NewLogger("test")
	require.NotNil(t, l)
}

// Every entry carries the "role" field so server and client logs can be told
// apart in aggregated output.
func TestNewLogger_RoleField(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("portal-server")
	l.Logger = l.Output(&buf)

	l.Info().Msg("hello")

	assert.Equal(t, "portal-server", logEntry(t, &buf)["role"])
}

func TestNewLogger_ContainsTimestamp(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("ts-role")
	l.Logger = l.Output(&buf)

	l.Info().Msg("ts check")

	_, hasTime := logEntry(t, &buf)["time"]
	assert.True(t, hasTime, "expected 'time' field in log entry")
}

// The caller field is named "func" so handlers can tag entries with
// Str("func", ...) consistently.
func TestNewLogger_CallerFieldName(t *testing.T) {
	NewLogger("caller-role")
	assert.Equal(t, "func", zerolog.CallerFieldName)
}

func TestNewLogger_GlobalLevelIsDebug(t *testing.T) {
	NewLogger("level-role")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

// ── NewClientLogger ─────────────────────────────────────────────────────────

func TestNewClientLogger_NotNil(t *testing.T) {
	l := NewClientLogger("portalctl")
	require.NotNil(t, l)
}

func TestNewClientLogger_RoleField(t *testing.T) {
	var buf bytes.Buffer
	l := NewClientLogger("portalctl")
	l.Logger = l.Output(&buf)

	l.Info().Msg("hello")

	assert.Equal(t, "portalctl", logEntry(t, &buf)["role"])
}

// ── Nop ─────────────────────────────────────────────────────────────────────

func TestNop_NotNil(t *testing.T) {
	require.NotNil(t, Nop())
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String(), "Nop logger should produce no output")
}

// ── GetChildLogger ──────────────────────────────────────────────────────────

func TestGetChildLogger_IsIndependentInstance(t *testing.T) {
	parent := NewLogger("parent")
	child := parent.GetChildLogger()

	require.NotNil(t, child)
	assert.NotSame(t, parent, child)
}

func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("inherited-role")
	parent.Logger = parent.Output(&buf)

	child := parent.GetChildLogger()
	child.Logger = child.Output(&buf)
	child.Info().Msg("child message")

	assert.Equal(t, "inherited-role", logEntry(t, &buf)["role"])
}

// ── FromContext / FromRequest ───────────────────────────────────────────────

func TestFromContext_NeverNil(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))
}

func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("ctx-key", "ctx-value").Logger()
	ctx := zl.WithContext(context.Background())

	l := FromContext(ctx)
	require.NotNil(t, l)
	l.Info().Msg("from context")

	assert.Equal(t, "ctx-value", logEntry(t, &buf)["ctx-key"])
}

func TestFromRequest_NeverNil(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NotNil(t, FromRequest(req))
}

func TestFromRequest_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("req-key", "req-value").Logger()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(zl.WithContext(req.Context()))

	l := FromRequest(req)
	require.NotNil(t, l)
	l.Info().Msg("from request")

	assert.Equal(t, "req-value", logEntry(t, &buf)["req-key"])
}
