package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr            string
	BackendBaseURL      string
	BackendTimeout      time.Duration
	RequiredEmailDomain string
	RedisAddr           string
	RedisPassword       string
	LoginRateLimit      int
	LoginRateWindow     time.Duration
}

func Load() Config {
	return Config{
		HTTPAddr:            getenv("HTTP_ADDR", ":8080"),
		BackendBaseURL:      getenv("BACKEND_BASE_URL", "http://127.0.0.1:5000/api"),
		BackendTimeout:      getenvDuration("BACKEND_TIMEOUT", 10*time.Second),
		RequiredEmailDomain: getenv("REQUIRED_EMAIL_DOMAIN", "@metropolia.fi"),
		RedisAddr:           getenv("REDIS_ADDR", ""),
		RedisPassword:       getenv("REDIS_PASSWORD", ""),
		LoginRateLimit:      getenvInt("LOGIN_RATE_LIMIT", 5),
		LoginRateWindow:     getenvDuration("LOGIN_RATE_WINDOW", 15*time.Minute),
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	if val := os.Getenv(key + "_SECONDS"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
