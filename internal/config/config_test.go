package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/avstrong/stayquote/internal/booking"
	"github.com/avstrong/stayquote/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Missing file falls back to defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, pricing.DefaultConfig(), cfg.PricingSnapshot())
		assert.Equal(t, booking.DefaultLimits(), cfg.BookingLimits())
		assert.Equal(t, 8092, cfg.HTTP.Port)
	})

	t.Run("File overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
http:
  port: 9000
  allowed_origins: ["https://hotel.example"]
log:
  level: debug
  format: json
pricing:
  extra_adult_nightly_cents: 1500
  child_free_age: 4
limits:
  max_adults: 6
`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 9000, cfg.HTTP.Port)
		assert.Equal(t, []string{"https://hotel.example"}, cfg.HTTP.AllowedOrigins)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, pricing.Cents(1500), cfg.PricingSnapshot().ExtraAdultNightly)
		assert.Equal(t, 4, cfg.PricingSnapshot().ChildFreeAge)
		assert.Equal(t, pricing.Dollars(25), cfg.PricingSnapshot().ServiceFee)
		assert.Equal(t, 6, cfg.BookingLimits().MaxAdults)
		assert.Equal(t, "/liveness", cfg.HTTP.LivenessEndpoint)
	})

	t.Run("Environment overrides file", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "7001")
		t.Setenv("LOG_LEVEL", "warn")

		cfg, err := Load(writeConfig(t, "http:\n  port: 9000\n"))
		require.NoError(t, err)
		assert.Equal(t, 7001, cfg.HTTP.Port)
		assert.Equal(t, "warn", cfg.Log.Level)
	})

	t.Run("Bad env port", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "eighty")

		_, err := Load(writeConfig(t, ""))
		assert.Error(t, err)
	})

	t.Run("Malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "http: [port"))
		assert.ErrorContains(t, err, "parse config file")
	})

	t.Run("Validation failures", func(t *testing.T) {
		for name, content := range map[string]string{
			"negative fee":      "pricing:\n  service_fee_cents: -1\n",
			"huge fee":          "pricing:\n  service_fee_cents: 100000000001\n",
			"unknown level":     "log:\n  level: loud\n",
			"max below min":     "limits:\n  min_adults: 3\n  max_adults: 2\n",
			"too many nights":   "limits:\n  max_nights: 3651\n",
			"huge nightly rate": "limits:\n  max_nightly_rate_cents: 100000000001\n",
			"port out of range": "http:\n  port: 70000\n",
			"relative liveness": "http:\n  liveness_endpoint: live\n",
		} {
			t.Run(name, func(t *testing.T) {
				_, err := Load(writeConfig(t, content))
				assert.ErrorContains(t, err, "invalid configuration")
			})
		}
	})
}
