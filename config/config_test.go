package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "wildberries-sync", cfg.AppName)
	assert.Equal(t, "development", cfg.ENV)

	assert.Equal(t, "ms-marketplaces-wb", cfg.Kafka.ConsumerTopic)

	assert.Equal(t, "https://marketplace-api.wildberries.ru", cfg.Wildberries.MarketplaceURL)
	assert.Equal(t, "https://statistics-api.wildberries.ru", cfg.Wildberries.StatisticsURL)
	assert.Equal(t, "https://content-api.wildberries.ru", cfg.Wildberries.ContentURL)
	assert.Equal(t, "https://discounts-prices-api.wildberries.ru", cfg.Wildberries.DiscountsURL)
	assert.False(t, cfg.Wildberries.UseSandbox)
	assert.Equal(t, "Authorization", cfg.Wildberries.AuthHeader)

	assert.Equal(t, 3, cfg.Fetcher.MaxAttempts)
	assert.Equal(t, 10, cfg.Fetcher.Concurrency)
	assert.Equal(t, 90*time.Second, cfg.Fetcher.ClientTimeout)
	assert.Equal(t, 1000, cfg.Fetcher.PageCap)
}

func TestLoadEnvOverridesAttempts(t *testing.T) {
	t.Setenv("MAX_COUNT_REPEAT_REQUESTS", "5")
	t.Setenv("WB_USE_SANDBOX", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Fetcher.MaxAttempts)
	assert.True(t, cfg.Wildberries.UseSandbox)
}
