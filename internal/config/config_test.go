package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("STORE_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 7090, cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, "ALE-5", cfg.Tracking.Prefix)
	assert.Equal(t, 16, cfg.Tracking.MaxAttempts)
	assert.Equal(t, 6, cfg.Stats.TrendMonths)
	assert.Equal(t, 10, cfg.RateLimit.SubmitPerMinute)
	assert.Equal(t, 5, cfg.RateLimit.SubmitBurst)
	assert.Equal(t, "complaints.events", cfg.Events.Channel)
	assert.False(t, cfg.Events.Enabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("HTTP_WRITE_TIMEOUT", "30s")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DB_DSN", "postgres://complaints@localhost/complaints")
	t.Setenv("TRACKING_PREFIX", "BLK-7")
	t.Setenv("STATS_TREND_MONTHS", "12")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "BLK-7", cfg.Tracking.Prefix)
	assert.Equal(t, 12, cfg.Stats.TrendMonths)
	assert.True(t, cfg.Events.Enabled())
}

func TestLoad_RequiredValues(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("STORE_DRIVER", "memory")
	_, err := Load()
	assert.ErrorContains(t, err, "JWT_ACCESS_SECRET")

	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_DSN", "")
	_, err = Load()
	assert.ErrorContains(t, err, "DB_DSN")

	t.Setenv("STORE_DRIVER", "sqlite")
	_, err = Load()
	assert.ErrorContains(t, err, "STORE_DRIVER")
}
