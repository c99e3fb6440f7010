package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.NotEmpty(t, cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, 0.12, cfg.Rates.Energy)
	assert.Equal(t, 0.18, cfg.Rates.Peak)
	assert.Equal(t, 0.08, cfg.Rates.OffPeak)
	assert.Equal(t, 0.15, cfg.Rates.SavingsFraction)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MYWATT_API_URL", "http://localhost:5000")
	t.Setenv("MYWATT_POLL_INTERVAL", "5s")
	t.Setenv("MYWATT_ENERGY_RATE", "0.20")

	cfg := Load()
	assert.Equal(t, "http://localhost:5000", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, 0.20, cfg.Rates.Energy)
}

func TestLoadIgnoresGarbage(t *testing.T) {
	t.Setenv("MYWATT_POLL_INTERVAL", "whenever")
	t.Setenv("MYWATT_ENERGY_RATE", "cheap")

	cfg := Load()
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, 0.12, cfg.Rates.Energy)
}
