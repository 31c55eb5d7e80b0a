package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "lexdiff-audit.ndjson", cfg.AuditLogPath)
	assert.Equal(t, int64(64<<20), cfg.AuditLogMaxBytes)
	assert.Empty(t, cfg.PostgresDSN)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "lexdiff.audit.records", cfg.KafkaTopic)
	assert.Equal(t, 256, cfg.DiffCacheSize)
	assert.Equal(t, 24*time.Hour, cfg.DiffCacheTTL)
	assert.NotEmpty(t, cfg.JWTSigningKey)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("LEXDIFF_ADDR", ":9090")
	t.Setenv("LEXDIFF_AUDIT_LOG", "/var/log/lexdiff/audit.ndjson")
	t.Setenv("LEXDIFF_AUDIT_LOG_MAX_BYTES", "1048576")
	t.Setenv("LEXDIFF_KAFKA_BROKERS", "broker-1:9092,broker-2:9092")
	t.Setenv("LEXDIFF_DIFF_CACHE_TTL", "30m")
	t.Setenv("JWT_SIGNING_KEY", "prod-key")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/var/log/lexdiff/audit.ndjson", cfg.AuditLogPath)
	assert.Equal(t, int64(1048576), cfg.AuditLogMaxBytes)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Minute, cfg.DiffCacheTTL)
	assert.Equal(t, "prod-key", cfg.JWTSigningKey)
}

func TestFromEnvIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("LEXDIFF_AUDIT_LOG_MAX_BYTES", "lots")
	t.Setenv("LEXDIFF_DIFF_CACHE_TTL", "soon")

	cfg := FromEnv()

	assert.Equal(t, int64(64<<20), cfg.AuditLogMaxBytes)
	assert.Equal(t, 24*time.Hour, cfg.DiffCacheTTL)
}
