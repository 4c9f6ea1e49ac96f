package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string
	DBPath               string
	DownloadsDir         string
	LogLevel             string
	FetchTimeoutSecs     int
	MaxConcurrentArchive int
	RateLimitRPS         int
	WarmCache            bool
	WarmWorkerCount      int
	WarmQueueSize        int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		DBPath:               envOr("DB_PATH", "file:chessvault.db"),
		DownloadsDir:         envOr("DOWNLOADS_DIR", "downloads"),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		FetchTimeoutSecs:     envIntOr("FETCH_TIMEOUT", 15),
		MaxConcurrentArchive: envIntOr("MAX_CONCURRENT_ARCHIVE", 10),
		RateLimitRPS:         envIntOr("RATE_LIMIT_RPS", 5),
		WarmCache:            envBoolOr("WARM_CACHE", true),
		WarmWorkerCount:      envIntOr("WARM_WORKER_COUNT", 2),
		WarmQueueSize:        envIntOr("WARM_QUEUE_SIZE", 32),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
