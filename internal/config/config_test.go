package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("CMC_API_KEY", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CMC_API_KEY", "cb88e221-51ee-4694-9f62-c12319dfefea")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://pro-api.coinmarketcap.com", cfg.BaseURL)
	assert.Equal(t, "USD", cfg.Convert)
	assert.Equal(t, 200, cfg.DefaultLimit)
	assert.Equal(t, 0, cfg.AutoRefreshMS)
	assert.Equal(t, 20*time.Second, cfg.HTTPTimeout)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CMC_API_KEY", "k-123456789")
	t.Setenv("CMC_CONVERT", "EUR")
	t.Setenv("CMC_DEFAULT_LIMIT", "50")
	t.Setenv("CMC_AUTO_REFRESH_MS", "60000")
	t.Setenv("CMC_HTTP_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "EUR", cfg.Convert)
	assert.Equal(t, 50, cfg.DefaultLimit)
	assert.Equal(t, 60000, cfg.AutoRefreshMS)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}

func TestMaskedKey(t *testing.T) {
	long := &Config{APIKey: "cb88e221-51ee-4694-9f62-c12319dfefea"}
	assert.Equal(t, "cb8...fea", long.MaskedKey())

	short := &Config{APIKey: "tiny"}
	assert.Equal(t, "***", short.MaskedKey())
}
