package appconf

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads KEY=value pairs from the given files (".env" when none)
// into the process environment. Variables already set win, and missing files
// are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			present = append(present, file)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

// FromEnv overlays environment variables on base.
func FromEnv(base Config) Config {
	cfg := base
	cfg.Host = getEnv("HOST", cfg.Host)
	cfg.Port = getIntEnv("PORT", cfg.Port)
	if env := os.Getenv("ENV"); env != "" {
		cfg.Env = EnvFlagToEnvironment(env)
	}
	cfg.Verbose = getBoolEnv("VERBOSE", cfg.Verbose)
	if keys := os.Getenv("API_KEYS"); keys != "" {
		cfg.ApiKeys = ParseAPIKeys(keys)
	}
	cfg.RateLimit = getIntEnv("RATE_LIMIT", cfg.RateLimit)
	cfg.StaticDir = getEnv("STATIC_DIR", cfg.StaticDir)
	cfg.LogFile = getEnv("LOG_FILE", cfg.LogFile)
	cfg.FeedTimeout = getDurationEnv("HTTP_TIMEOUT_SECONDS", cfg.FeedTimeout)
	cfg.FeedAPIKey = getEnv("MTA_API_KEY", cfg.FeedAPIKey)
	cfg.Timezone = getEnv("BOARD_TIMEZONE", cfg.Timezone)
	cfg.ClockOverrideEnv = getEnv("CLOCK_OVERRIDE_ENV", cfg.ClockOverrideEnv)
	cfg.ClockOverrideFile = getEnv("CLOCK_OVERRIDE_FILE", cfg.ClockOverrideFile)
	return cfg
}

// ParseAPIKeys splits a comma separated list and trims each key.
func ParseAPIKeys(input string) []string {
	if strings.TrimSpace(input) == "" {
		return []string{}
	}
	parts := strings.Split(input, ",")
	keys := make([]string, len(parts))
	for i, part := range parts {
		keys[i] = strings.TrimSpace(part)
	}
	return keys
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
