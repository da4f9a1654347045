// Package config handles application configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Port        string
	Environment string // "development", "staging", "production"

	// Persistence. MongoURI takes precedence over DatabaseURL; with neither
	// set the service runs on in-memory stores.
	MongoURI            string
	MongoDBName         string
	MongoCollectionName string
	DatabaseURL         string // PostgreSQL connection string

	// Static fraud lists
	BlacklistedIPs        []string
	BlacklistSeedAccounts []string

	// Detector tuning
	AnomalyWindow    int
	AnomalyThreshold float64
	MaxDriftKm       float64
}

// Defaults mirror the original service's built-in lists and thresholds.
const (
	DefaultPort            = "8080"
	DefaultEnvironment     = "development"
	DefaultMongoDBName     = "fraud_detection"
	DefaultMongoCollection = "transactions"
)

var (
	defaultBlacklistedIPs = []string{"203.0.113.5", "198.51.100.10", "45.33.32.156"}
	defaultSeedAccounts   = []string{"9876543210", "1111222233"}
)

// Load reads configuration from environment variables.
// It loads a .env file first if one is present (for local development).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                  getEnv("PORT", DefaultPort),
		Environment:           getEnv("ENVIRONMENT", DefaultEnvironment),
		MongoURI:              os.Getenv("MONGO_URI"),
		MongoDBName:           getEnv("MONGO_DB_NAME", DefaultMongoDBName),
		MongoCollectionName:   getEnv("MONGO_COLLECTION_NAME", DefaultMongoCollection),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		BlacklistedIPs:        getEnvList("BLACKLISTED_IPS", defaultBlacklistedIPs),
		BlacklistSeedAccounts: getEnvList("BLACKLIST_SEED_ACCOUNTS", defaultSeedAccounts),
		AnomalyWindow:         getEnvInt("ANOMALY_WINDOW", 5),
		AnomalyThreshold:      getEnvFloat("ANOMALY_THRESHOLD", 2.5),
		MaxDriftKm:            getEnvFloat("MAX_DRIFT_KM", 500),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	var result []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return fallback
	}
	return result
}
