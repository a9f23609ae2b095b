// Package temporal dials the Temporal frontend with tracing and structured logging.
package temporal

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	platformobservability "github.com/Apurer/go-cart-widget/internal/platform/observability"
)

// ErrDisabled is returned by Dial when Temporal was switched off by configuration.
var ErrDisabled = errors.New("temporal disabled via TEMPORAL_DISABLED env")

// Options selects the Temporal cluster.
type Options struct {
	Address   string
	Namespace string
	Disabled  bool
	// Component names the tracer, e.g. "temporal-client" or "temporal-worker".
	Component string
}

// Dial connects a Temporal client that propagates OpenTelemetry spans and logs via slog.
func Dial(instruments *platformobservability.Instruments, opts Options) (client.Client, error) {
	if opts.Disabled {
		return nil, ErrDisabled
	}
	component := opts.Component
	if component == "" {
		component = "temporal-client"
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer(component),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  valueOrDefault(opts.Address, client.DefaultHostPort),
		Namespace: valueOrDefault(opts.Namespace, client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func valueOrDefault(value, fallback string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return fallback
}
