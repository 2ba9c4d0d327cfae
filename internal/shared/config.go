package shared

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string

	// RedisAddr empty disables the availability cache.
	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	// RateLimitRPS <= 0 disables write throttling.
	RateLimitRPS    int
	SeedFile        string
	ShutdownTimeout time.Duration

	// importer
	LedgerURL     string
	ImportWorkers int
	ImportRPS     int

	// Warnings lists values Load replaced with defaults. Load runs before the
	// logger exists, so the caller logs them.
	Warnings []string
}

func Load() Config {
	var warnings []string
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			warnings = append(warnings, fmt.Sprintf("%s=%q is not an integer, using %d", k, v, def))
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		LogLevel:        env("LOG_LEVEL", "info"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ":9100"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPass:       env("REDIS_PASSWORD", ""),
		RedisDB:         atoi("REDIS_DB", 0),
		CacheTTL:        time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		RateLimitRPS:    atoi("RATE_LIMIT_RPS", 20),
		SeedFile:        os.Getenv("SEED_FILE"),
		ShutdownTimeout: time.Duration(atoi("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
		LedgerURL:       env("LEDGER_URL", "http://localhost:8080"),
		ImportWorkers:   atoi("IMPORT_WORKERS", 4),
		ImportRPS:       atoi("IMPORT_RPS", 10),
	}
	c.Warnings = warnings
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
