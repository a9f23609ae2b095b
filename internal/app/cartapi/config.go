package cartapi

import (
	"fmt"
	"os"
	"strings"
)

// Config carries environment-driven settings for the reference cart API process.
type Config struct {
	Port        string
	PostgresDSN string
	RedisAddr   string
	SeedFile    string
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:        envDefault("PORT", "3000"),
		PostgresDSN: strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		RedisAddr:   strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		SeedFile:    strings.TrimSpace(os.Getenv("CART_API_SEED")),
	}
	if cfg.PostgresDSN != "" && cfg.RedisAddr != "" {
		return Config{}, fmt.Errorf("POSTGRES_DSN and REDIS_ADDR are mutually exclusive")
	}
	if cfg.SeedFile != "" {
		if _, err := os.Stat(cfg.SeedFile); err != nil {
			return Config{}, fmt.Errorf("CART_API_SEED: %w", err)
		}
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
