package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PG_MAX_CONNS", "16")
	t.Setenv("STATUS_TRANSITIONS", "strict")
	t.Setenv("KAFKA_BROKERS", "broker-a:9092, broker-b:9092 ,")
	t.Setenv("JWT_TTL", "48h")

	cfg := Load()
	assert.Equal(t, 16, cfg.PGMaxConns)
	assert.True(t, cfg.StrictTransitions)
	assert.Equal(t, []string{"broker-a:9092", "broker-b:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 48*time.Hour, cfg.JWTTTL)
}

func TestLoadIgnoresBadValues(t *testing.T) {
	t.Setenv("PG_MAX_CONNS", "lots")
	t.Setenv("JWT_TTL", "soon")

	cfg := Load()
	assert.Equal(t, 8, cfg.PGMaxConns)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTTTL)
}
