package widget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Apurer/go-cart-widget/internal/clients/http/cartapi"
	widgetobs "github.com/Apurer/go-cart-widget/internal/domains/widget/adapters/observability"
	"github.com/Apurer/go-cart-widget/internal/domains/widget/adapters/view"
	"github.com/Apurer/go-cart-widget/internal/domains/widget/adapters/web"
	widgetworkflows "github.com/Apurer/go-cart-widget/internal/domains/widget/adapters/workflows"
	widgetapp "github.com/Apurer/go-cart-widget/internal/domains/widget/application"
	widgetports "github.com/Apurer/go-cart-widget/internal/domains/widget/ports"
	platformobservability "github.com/Apurer/go-cart-widget/internal/platform/observability"
	platformtemporal "github.com/Apurer/go-cart-widget/internal/platform/temporal"
)

const serviceName = "cart-widget"

// Run boots the cart widget: API client, store, document, controller and HTTP surface.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	client, err := cartapi.NewClient(cfg.CartAPIURL, cartapi.WithTimeout(cfg.CartAPITimeout))
	if err != nil {
		return fmt.Errorf("failed to build cart API client: %w", err)
	}
	api := widgetobs.New(
		client,
		widgetobs.WithLogger(logger),
		widgetobs.WithTracer(instruments.Tracer("internal.widget.cartapi")),
		widgetobs.WithMeter(instruments.Meter("internal.widget.cartapi")),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder, err := widgetobs.NewRecorder(registry)
	if err != nil {
		return fmt.Errorf("failed to register widget metrics: %w", err)
	}

	var checkout widgetports.CheckoutOrchestrator = widgetworkflows.NewInlineCheckout(api)
	temporalClient, err := platformtemporal.Dial(instruments, platformtemporal.Options{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Disabled:  cfg.TemporalDisabled,
	})
	if err != nil {
		logger.Warn("Temporal workflows unavailable, running inline checkout", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		checkout = widgetworkflows.NewTemporalCheckout(temporalClient, widgetworkflows.WithExecutionTimeout(cfg.CheckoutTimeout))
		logger.Info("Temporal checkout enabled",
			slog.String("namespace", cfg.TemporalNamespace),
			slog.Duration("timeout", cfg.CheckoutTimeout))
	}

	document := view.NewDocument()
	controller := widgetapp.NewController(
		api,
		document,
		widgetapp.WithLogger(logger),
		widgetapp.WithCheckout(checkout),
		widgetapp.WithRecorder(recorder),
	)
	if err := controller.Init(ctx); err != nil {
		logger.Warn("initial load incomplete, serving what arrived", slog.String("error", err.Error()))
	}

	router := NewRouter(web.NewHandler(controller, document, web.WithLogger(logger)), registry)
	addr := ":" + cfg.Port
	logger.Info("cart widget listening", slog.String("addr", addr), slog.String("cartApi", cfg.CartAPIURL))
	if err := router.Run(addr); err != nil {
		logger.Error("cart widget server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// NewRouter mounts the widget routes and the Prometheus endpoint on a traced engine.
func NewRouter(handler *web.Handler, gatherer prometheus.Gatherer) *gin.Engine {
	if handler == nil {
		panic(errors.New("widget handler is required"))
	}
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	handler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	return router
}
