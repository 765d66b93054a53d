package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Session SessionConfig
	Search  SearchConfig
	Catalog CatalogConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

// BackendConfig describes the upstream QKart REST service.
type BackendConfig struct {
	Endpoint string
	Timeout  time.Duration
}

type SessionConfig struct {
	Store         string // memory, redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
	CookieName    string
}

type SearchConfig struct {
	// QuietInterval is how long input must be idle before a search fires.
	QuietInterval time.Duration
}

type CatalogConfig struct {
	// RefreshSpec is a cron expression for background catalog refresh.
	// Empty disables the scheduler.
	RefreshSpec string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Backend: BackendConfig{
			Endpoint: getEnv("BACKEND_ENDPOINT", "http://localhost:8082/api/v1"),
			Timeout:  parseDuration(getEnv("BACKEND_TIMEOUT", "30s"), 30*time.Second),
		},
		Session: SessionConfig{
			Store:         getEnv("SESSION_STORE", "memory"),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       parseInt(getEnv("REDIS_DB", "0"), 0),
			TTL:           parseDuration(getEnv("SESSION_TTL", "168h"), 168*time.Hour),
			CookieName:    getEnv("SESSION_COOKIE", "qkart_session"),
		},
		Search: SearchConfig{
			QuietInterval: parseDuration(getEnv("SEARCH_QUIET_INTERVAL", "500ms"), 500*time.Millisecond),
		},
		Catalog: CatalogConfig{
			RefreshSpec: getEnv("CATALOG_REFRESH_SPEC", "@every 15m"),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return n
}
