package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Empty(t, cfg.Postgres.DSN)
	assert.Empty(t, cfg.Redis.URL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "crossverify.audit.v1", cfg.Kafka.AuditTopic)
	assert.Equal(t, 5*time.Minute, cfg.Auth.CodeTTL)
	assert.Equal(t, 3, cfg.Verification.ElectricityMismatchThreshold)
	assert.Equal(t, int64(1), cfg.Verification.LPGMaxRefillDiff)
	assert.Equal(t, "150", cfg.Verification.LPGMaxCostDiff)
	assert.Equal(t, "10", cfg.Verification.LPGMaxIntervalDiff)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("CROSSVERIFY_ADDR", ":9090")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092,")
	t.Setenv("AUTH_CODE_TTL", "90s")
	t.Setenv("ELEC_MISMATCH_THRESHOLD", "5")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 90*time.Second, cfg.Auth.CodeTTL)
	assert.Equal(t, 5, cfg.Verification.ElectricityMismatchThreshold)
}

func TestFromEnvIgnoresMalformedValues(t *testing.T) {
	t.Setenv("ELEC_MISMATCH_THRESHOLD", "lots")
	t.Setenv("AUTH_CODE_TTL", "soon")

	cfg := FromEnv()

	assert.Equal(t, 3, cfg.Verification.ElectricityMismatchThreshold)
	assert.Equal(t, 5*time.Minute, cfg.Auth.CodeTTL)
}
