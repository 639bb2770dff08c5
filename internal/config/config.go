// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Classification defaults.
const (
	DefaultBaseURL     = "http://localhost:11434"
	DefaultModelID     = "llama3.2:3b"
	DefaultTemperature = 0.1
	DefaultTimeoutMs   = 30000
	DefaultBatchSize   = 4
)

// Config holds all configuration for the MCP server. Loaded once at process
// start and read-only afterwards.
type Config struct {
	OllamaBaseURL       string        // OLLAMA_BASE_URL, default "http://localhost:11434"
	ModelID             string        // MODEL_ID, default "llama3.2:3b"
	Temperature         float64       // TEMPERATURE, default 0.1
	ClassifyTimeout     time.Duration // TIMEOUT_MS, default 30000ms (30s)
	BatchWorkers        int           // BATCH_WORKERS, default 4
	BackendProbeTimeout time.Duration // BACKEND_PROBE_TIMEOUT_MS, default 2000ms

	// Logging configuration
	LogLevel      string // LOG_LEVEL: debug, info, warn, error
	LogFile       string // LOG_FILE: path to log file (empty = stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB
	LogMaxBackups int    // LOG_MAX_BACKUPS
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS
	LogCompress   bool   // LOG_COMPRESS
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		OllamaBaseURL:       getEnvString("OLLAMA_BASE_URL", DefaultBaseURL),
		ModelID:             getEnvString("MODEL_ID", DefaultModelID),
		Temperature:         getEnvFloat("TEMPERATURE", DefaultTemperature),
		ClassifyTimeout:     getEnvDurationMs("TIMEOUT_MS", DefaultTimeoutMs),
		BatchWorkers:        getEnvInt("BATCH_WORKERS", DefaultBatchSize),
		BackendProbeTimeout: getEnvDurationMs("BACKEND_PROBE_TIMEOUT_MS", 2000),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
