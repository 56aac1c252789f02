package main

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port           string
	Environment    string
	BackendBaseURL string
	RedisURL       string
	JWTSecret      string
	SessionTTL     time.Duration
	BackendTimeout time.Duration
	IdempotencyTTL time.Duration
	RatePerMinute  int
	RateBurst      int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8090"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		BackendBaseURL: getEnv("STOCKHUB_API_URL", "http://localhost:8080/api"),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		SessionTTL:     getDuration("SESSION_TTL", time.Hour*24*7),
		BackendTimeout: getDuration("BACKEND_TIMEOUT", 10*time.Second),
		IdempotencyTTL: getDuration("IDEMPOTENCY_TTL", 24*time.Hour),
		RatePerMinute:  getInt("RATE_PER_MINUTE", 300),
		RateBurst:      getInt("RATE_BURST", 50),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
