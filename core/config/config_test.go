package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	assert.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "file", cfg.Store.Driver)
	assert.Equal(t, "data", cfg.Store.Dir)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.Storage.Enabled)
	assert.InDelta(t, 0.25, cfg.Pricing.TargetCostRate, 1e-9)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("STORE_DRIVER", "database")
	t.Setenv("PRICING_TARGET_COST_RATE", "0.3")

	cfg, err := LoadConfig(t.TempDir())
	assert.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "database", cfg.Store.Driver)
	assert.InDelta(t, 0.3, cfg.Pricing.TargetCostRate, 1e-9)
}
