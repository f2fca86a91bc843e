package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"castads/internal/config/configs"
	"castads/internal/core/invoke"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, 15*time.Minute, cfg.Scheduler.Interval)
	assert.Equal(t, "placement-events", cfg.Kafka.Topic)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, 6*time.Hour, cfg.Redis.ScoreTTL)
	assert.Equal(t, time.Second, cfg.Policy.Payout.InterTxDelay)
	assert.Equal(t, 0.95, cfg.Policy.Payout.CreatorShare)
	assert.Equal(t, invoke.RetryPolicy{MaxAttempts: 3, BaseDelay: 500 * time.Millisecond, Strategy: invoke.Exponential, Timeout: 30 * time.Second},
		cfg.AI.RetryPolicy())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("STORE", "memory")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("AI_BACKOFF", "linear")
	t.Setenv("AI_VERIFICATION_MODEL", "judge-1")
	t.Setenv("LEDGER_INTER_TX_DELAY", "250ms")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, invoke.Linear, cfg.AI.RetryPolicy().Strategy)
	assert.Equal(t, "judge-1", cfg.AI.JudgeModel())
	assert.Equal(t, 250*time.Millisecond, cfg.Policy.Payout.InterTxDelay)
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	t.Setenv("STORE", "mongo")
	_, err := Load()
	assert.Error(t, err)
}

func TestPolicyFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
matching:
  threshold: 0.6
payout:
  partial_settlement: true
  min_exposures: 25
rejected_retention: 72h
`), 0o600))
	t.Setenv("POLICY_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.6, cfg.Policy.Matching.Threshold)
	assert.Equal(t, 0.4, cfg.Policy.Matching.Weights.Audience, "untouched keys keep defaults")
	assert.True(t, cfg.Policy.Payout.PartialSettlement)
	assert.Equal(t, int64(25), cfg.Policy.Payout.MinExposures)
	assert.Equal(t, 72*time.Hour, cfg.Policy.RejectedRetention)
}

func TestPolicyValidate(t *testing.T) {
	p := configs.DefaultPolicy()
	require.NoError(t, p.Validate())

	p.Matching.Weights.Quality = 0.5
	p.Payout.CreatorShare = 1.2
	p.Payout.MinExposures = 0
	err := p.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "weights")
	assert.ErrorContains(t, err, "creator share")
	assert.ErrorContains(t, err, "min payout exposures")
}
