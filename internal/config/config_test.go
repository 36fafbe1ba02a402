package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("GOOGLE_CLIENT_ID", "")

	cfg := New()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, defaultSessionTTL, cfg.SessionTTL)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.GoogleEnabled())
	require.NoError(t, cfg.Validate())
}

func TestNewOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("GOOGLE_CLIENT_ID", "id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")

	cfg := New()

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.GoogleEnabled())
}

func TestValidateReportsBadValues(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	t.Setenv("LOG_FORMAT", "xml")

	cfg := New()

	assert.Equal(t, defaultSessionTTL, cfg.SessionTTL)
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_TTL")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestNegativeSessionTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "-1h")

	cfg := New()

	assert.Equal(t, defaultSessionTTL, cfg.SessionTTL)
	assert.Error(t, cfg.Validate())
}
