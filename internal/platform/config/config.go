// Package config builds the process configuration from environment variables
// so main stays lean. Every knob has a development default; production
// deployments override via env.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates per-concern configuration structs.
type Config struct {
	Server       ServerConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Kafka        KafkaConfig
	Auth         AuthConfig
	Verification VerificationConfig
}

// ServerConfig captures HTTP server level configuration.
type ServerConfig struct {
	Addr string
}

// PostgresConfig holds the DSN for the baseline/verdict stores. Empty means
// run on in-memory stores (dev and tests).
type PostgresConfig struct {
	DSN string
}

// RedisConfig configures the shared Redis client. Empty URL means Redis is
// not configured and the in-memory code store is used instead.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the audit event publisher. No brokers means audit
// events stay on the in-memory sink.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

// AuthConfig covers the one-time-code login flow and token issuance.
type AuthConfig struct {
	JWTSigningKey string
	TokenTTL      time.Duration
	CodeTTL       time.Duration
	Issuer        string
}

// VerificationConfig carries the comparison knobs. The electricity mismatch
// threshold is deliberately configuration, not a buried constant.
type VerificationConfig struct {
	ElectricityMismatchThreshold int
	LPGMaxRefillDiff             int64
	LPGMaxCostDiff               string
	LPGMaxIntervalDiff           string
}

// FromEnv builds the full configuration from environment variables.
func FromEnv() Config {
	return Config{
		Server: ServerConfig{
			Addr: envOr("CROSSVERIFY_ADDR", ":8080"),
		},
		Postgres: PostgresConfig{
			DSN: os.Getenv("POSTGRES_DSN"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envIntOr("REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDurationOr("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDurationOr("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDurationOr("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:    splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
			AuditTopic: envOr("KAFKA_AUDIT_TOPIC", "crossverify.audit.v1"),
		},
		Auth: AuthConfig{
			JWTSigningKey: envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			TokenTTL:      envDurationOr("AUTH_TOKEN_TTL", 7*24*time.Hour),
			CodeTTL:       envDurationOr("AUTH_CODE_TTL", 5*time.Minute),
			Issuer:        envOr("AUTH_ISSUER", "crossverify"),
		},
		Verification: VerificationConfig{
			ElectricityMismatchThreshold: envIntOr("ELEC_MISMATCH_THRESHOLD", 3),
			LPGMaxRefillDiff:             int64(envIntOr("LPG_MAX_REFILL_DIFF", 1)),
			LPGMaxCostDiff:               envOr("LPG_MAX_COST_DIFF", "150"),
			LPGMaxIntervalDiff:           envOr("LPG_MAX_INTERVAL_DIFF", "10"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitNonEmpty(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
