package config

import (
	"os"
	"strconv"
	"time"
)

// Rates holds the billing constants used to derive cost figures from raw
// usage numbers. The backend only reports kWh; every cost shown to the user
// is computed client-side from these.
type Rates struct {
	Energy          float64 // AED per kWh, standard tariff
	Peak            float64 // AED per kWh during peak hours
	OffPeak         float64 // AED per kWh during off-peak hours
	SavingsFraction float64 // fraction of total cost recoverable by shifting usage
}

// Config holds application configuration.
type Config struct {
	APIBaseURL   string
	HTTPTimeout  time.Duration
	PollInterval time.Duration
	LogLevel     string
	Rates        Rates
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		APIBaseURL:   getEnv("MYWATT_API_URL", "https://backend-1-y12u.onrender.com"),
		HTTPTimeout:  getDuration("MYWATT_HTTP_TIMEOUT", 10*time.Second),
		PollInterval: getDuration("MYWATT_POLL_INTERVAL", 30*time.Second),
		LogLevel:     getEnv("MYWATT_LOG_LEVEL", "info"),
		Rates: Rates{
			Energy:          getFloat("MYWATT_ENERGY_RATE", 0.12),
			Peak:            getFloat("MYWATT_PEAK_RATE", 0.18),
			OffPeak:         getFloat("MYWATT_OFF_PEAK_RATE", 0.08),
			SavingsFraction: getFloat("MYWATT_SAVINGS_FRACTION", 0.15),
		},
	}
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
