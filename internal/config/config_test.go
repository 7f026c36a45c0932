package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "BASE_URL", "ASSET_BASE_URL", "HTTP_TIMEOUT", "UPLOAD_RATE_LIMIT",
		"APP_ENV", "AUDIT_DB_DRIVER", "AUDIT_RETENTION_DAYS", "AUDIT_SWEEP_SCHEDULE",
		"GATEWAY_RATE_LIMIT", "GATEWAY_RATE_BURST", "CORS_ORIGINS",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("SESSION_FILE", "/tmp/session.yaml")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultAssetBaseURL, cfg.AssetBaseURL)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
	assert.Equal(t, 0.0, cfg.UploadRateLimit)
	assert.Equal(t, "mysql", cfg.AuditDriver)
	assert.Equal(t, 90, cfg.AuditRetentionDays)
	assert.Equal(t, "@daily", cfg.AuditSweepSchedule)
	assert.Equal(t, 10.0, cfg.RateLimit)
	assert.Equal(t, 20, cfg.RateBurst)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "/tmp/session.yaml", cfg.SessionFile)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "Production")
	t.Setenv("BASE_URL", "https://api.example.com/")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("UPLOAD_RATE_LIMIT", "2.5")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("AUDIT_RETENTION_DAYS", "not-a-number")

	cfg := LoadConfig()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2.5, cfg.UploadRateLimit)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 90, cfg.AuditRetentionDays)
}
