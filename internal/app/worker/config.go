package worker

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-cart-widget/internal/clients/http/cartapi"
)

// Config carries environment-driven settings for the checkout worker.
type Config struct {
	CartAPIURL        string
	CartAPITimeout    time.Duration
	TemporalAddress   string
	TemporalNamespace string
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		CartAPIURL:        envDefault("CART_API_URL", cartapi.DefaultBaseURL),
		CartAPITimeout:    5 * time.Second,
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
	}
	if parsed, err := url.Parse(cfg.CartAPIURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Config{}, fmt.Errorf("CART_API_URL must be an absolute URL, got %q", cfg.CartAPIURL)
	}
	if raw := strings.TrimSpace(os.Getenv("CART_API_TIMEOUT")); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			return Config{}, fmt.Errorf("CART_API_TIMEOUT must be a positive duration such as 5s, got %q", raw)
		}
		cfg.CartAPITimeout = timeout
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
