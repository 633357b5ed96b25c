package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

const insecureSecret = "dev-insecure-secret"

type Config struct {
	Port            string
	AlphaVantageKey string
	SessionSecret   string
	TokenTTLHours   int
	DatabaseURL     string
	RedisURL        string
	RateLimitPerMin int
	TracingEnabled  bool
	OTLPEndpoint    string
}

func Load() *Config {
	cfg := &Config{
		AlphaVantageKey: os.Getenv("ALPHA_VANTAGE_API_KEY"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
	}

	cfg.Port = strings.TrimSpace(os.Getenv("PORT"))
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if cfg.AlphaVantageKey == "" {
		log.Println("Warning: ALPHA_VANTAGE_API_KEY not set, quote requests will fail")
	}
	if cfg.SessionSecret == "" {
		log.Println("Warning: SESSION_SECRET not set, using an insecure default")
		cfg.SessionSecret = insecureSecret
	}
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set, using in-memory store")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, rate limiting disabled")
	}

	cfg.TokenTTLHours = 168
	if v := strings.TrimSpace(os.Getenv("TOKEN_TTL_HOURS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TokenTTLHours = n
		}
	}

	cfg.RateLimitPerMin = 60
	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_PER_MIN")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateLimitPerMin = n
		}
	}

	cfg.TracingEnabled = strings.EqualFold(strings.TrimSpace(os.Getenv("TRACING_ENABLED")), "true")

	cfg.OTLPEndpoint = strings.TrimSpace(os.Getenv("OTLP_ENDPOINT"))
	if cfg.OTLPEndpoint == "" {
		cfg.OTLPEndpoint = "localhost:4317"
	}

	return cfg
}
