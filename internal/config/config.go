package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	APIToken string
	Nickname string

	OracleBackend string // "gemini" or "ollama"
	GeminiAPIKey  string
	GeminiModel   string
	OllamaURL     string
	OllamaModel   string

	StoreBackend  string // "sqlite", "redis" or "memory"
	DBPath        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ResyncInterval time.Duration // 0 disables the re-sync job
}

func Load() (*Config, error) {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("CALMMATE_PORT", "8080"),
		APIToken:      getEnv("CALMMATE_TOKEN", ""),
		Nickname:      getEnv("CALMMATE_NICKNAME", "CalmMate"),
		OracleBackend: getEnv("CALMMATE_ORACLE", "gemini"),
		GeminiAPIKey:  getEnv("GOOGLE_API_KEY", ""),
		GeminiModel:   getEnv("CALMMATE_GEMINI_MODEL", "gemini-2.5-flash-lite"),
		OllamaURL:     getEnv("CALMMATE_OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:   getEnv("CALMMATE_OLLAMA_MODEL", "qwen2.5:7b"),
		StoreBackend:  getEnv("CALMMATE_STORE", "sqlite"),
		DBPath:        getEnv("CALMMATE_DB_PATH", ""),
		RedisAddr:     getEnv("CALMMATE_REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("CALMMATE_REDIS_PASSWORD", ""),
	}

	if v := os.Getenv("CALMMATE_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("CALMMATE_REDIS_DB must be an integer: %w", err)
		}
		cfg.RedisDB = n
	}

	if v := os.Getenv("CALMMATE_RESYNC_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("CALMMATE_RESYNC_INTERVAL must be a duration: %w", err)
		}
		cfg.ResyncInterval = d
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIToken == "" {
		return fmt.Errorf("CALMMATE_TOKEN is required")
	}
	switch c.OracleBackend {
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY is required for the gemini oracle")
		}
	case "ollama":
		// Defaults cover a local install.
	default:
		return fmt.Errorf("CALMMATE_ORACLE must be gemini or ollama, got %q", c.OracleBackend)
	}
	switch c.StoreBackend {
	case "sqlite":
		if c.DBPath == "" {
			return fmt.Errorf("CALMMATE_DB_PATH is required for the sqlite store")
		}
	case "redis", "memory":
	default:
		return fmt.Errorf("CALMMATE_STORE must be sqlite, redis or memory, got %q", c.StoreBackend)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
