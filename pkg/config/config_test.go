package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fieldservice-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 5, cfg.Transfer.MaxAttempts)
	assert.Equal(t, 25*time.Millisecond, cfg.Transfer.RetryBaseDelay)
	assert.Equal(t, 10*time.Second, cfg.Transfer.Timeout)
	assert.Equal(t, "spare-part-transfers", cfg.Kafka.Topic)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("TRANSFER_MAX_ATTEMPTS", "8")
	t.Setenv("TRANSFER_TIMEOUT_SECONDS", "3")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("USER_CACHE_TTL_SECONDS", "30")
	t.Setenv("DB_MIGRATE", "false")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, 8, cfg.Transfer.MaxAttempts)
	assert.Equal(t, 3*time.Second, cfg.Transfer.Timeout)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.Redis.UserCacheTTL)
	assert.False(t, cfg.Store.Migrate)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := config.Load()
	require.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	dsn := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "fs", SSLMode: "disable"}.DSN()
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/fs?sslmode=disable", dsn)
}
