package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Oracle selects the LLM backend: "openrouter", "gemini", or "mock".
	Oracle        string
	ModelName     string
	OracleTimeout time.Duration
	HTTPReferer   string

	// Per-role API credentials. PRO/CON/JUDGE get dedicated keys; everything
	// else uses the default.
	APIKeyPro     string
	APIKeyCon     string
	APIKeyJudge   string
	APIKeyDefault string

	StorageBackend string // "memory" or "firestore"
	GCPProjectID   string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Load reads all env vars and builds the config.
func Load() *Config {
	cfg := &Config{
		Port: getEnv("POLYARGU_PORT", "8080"),

		Oracle:        getEnv("POLYARGU_ORACLE", "openrouter"),
		ModelName:     getEnv("POLYARGU_MODEL", "deepseek/deepseek-chat-v3.1:free"),
		OracleTimeout: time.Duration(getIntEnv("POLYARGU_ORACLE_TIMEOUT_SECONDS", 60)) * time.Second,
		HTTPReferer:   getEnv("POLYARGU_HTTP_REFERER", "http://localhost:5173"),

		APIKeyPro:     getEnv("POLYARGU_API_KEY_PRO", ""),
		APIKeyCon:     getEnv("POLYARGU_API_KEY_CON", ""),
		APIKeyJudge:   getEnv("POLYARGU_API_KEY_JUDGE", ""),
		APIKeyDefault: getEnv("POLYARGU_API_KEY_DEFAULT", ""),

		StorageBackend: getEnv("POLYARGU_STORAGE_BACKEND", "memory"),
		GCPProjectID:   getEnv("POLYARGU_GCP_PROJECT", ""),
	}

	if cfg.StorageBackend == "firestore" && cfg.GCPProjectID == "" {
		log.Fatal("POLYARGU_GCP_PROJECT must be set for the firestore storage backend")
	}
	if cfg.Oracle != "mock" && cfg.APIKeyDefault == "" {
		log.Fatal("POLYARGU_API_KEY_DEFAULT must be set unless POLYARGU_ORACLE=mock")
	}

	return cfg
}
