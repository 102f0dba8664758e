package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port          string
	Environment   string
	ReadTimeout   int
	WriteTimeout  int
	CatalogDir    string
	SessionDBPath string
	StoreID       string // optional per-store catalog override
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "3000"),
		Environment:   getEnv("ENV", "development"),
		ReadTimeout:   getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout:  getEnvAsInt("WRITE_TIMEOUT", 10),
		CatalogDir:    getEnv("CATALOG_DIR", "config"),
		SessionDBPath: getEnv("SESSION_DB_PATH", "data/db/sessions.db"),
		StoreID:       getEnv("STORE_ID", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
