package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string

	// Forensic log
	AuditLogPath     string
	AuditLogMaxBytes int64

	// Optional backends; empty means not configured.
	PostgresDSN  string
	RedisURL     string
	KafkaBrokers []string
	KafkaTopic   string

	DiffCacheSize int
	DiffCacheTTL  time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:             getenv("LEXDIFF_ADDR", ":8080"),
		AuditLogPath:     getenv("LEXDIFF_AUDIT_LOG", "lexdiff-audit.ndjson"),
		AuditLogMaxBytes: getenvInt64("LEXDIFF_AUDIT_LOG_MAX_BYTES", 64<<20),
		PostgresDSN:      os.Getenv("LEXDIFF_POSTGRES_DSN"),
		RedisURL:         os.Getenv("LEXDIFF_REDIS_URL"),
		KafkaTopic:       getenv("LEXDIFF_KAFKA_TOPIC", "lexdiff.audit.records"),
		DiffCacheSize:    int(getenvInt64("LEXDIFF_DIFF_CACHE_SIZE", 256)),
		DiffCacheTTL:     getenvDuration("LEXDIFF_DIFF_CACHE_TTL", 24*time.Hour),
	}

	if brokers := os.Getenv("LEXDIFF_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	cfg.JWTSigningKey = os.Getenv("JWT_SIGNING_KEY")
	if cfg.JWTSigningKey == "" {
		// Use a default for development - should be overridden in production
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
