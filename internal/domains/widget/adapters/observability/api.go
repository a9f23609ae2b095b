package observability

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-cart-widget/internal/clients/http/cartapi"
	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
	"github.com/Apurer/go-cart-widget/internal/domains/widget/ports"
)

const tracerName = "github.com/Apurer/go-cart-widget/internal/domains/widget/adapters/observability/api"

// API decorates the cart API client with tracing, logging, and metrics.
type API struct {
	inner   ports.CartAPI
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics apiMetrics
}

type Option func(*API)

func WithLogger(logger *slog.Logger) Option {
	return func(a *API) {
		a.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(a *API) {
		a.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(a *API) {
		a.metrics = newAPIMetrics(m)
	}
}

// New wraps the cart API.
func New(inner ports.CartAPI, opts ...Option) ports.CartAPI {
	a := &API{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newAPIMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	if a.tracer == nil {
		a.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return a
}

func (a *API) GetCart(ctx context.Context) ([]domain.CartItem, error) {
	ctx, span := a.tracer.Start(ctx, "CartAPI.GetCart")
	defer span.End()

	items, err := a.inner.GetCart(ctx)
	if err != nil {
		return nil, a.handleError(ctx, span, "get_cart", err, "failed to get cart")
	}
	a.metrics.recordCall(ctx, "get_cart", nil)
	span.SetAttributes(attribute.Int("cart.size", len(items)))
	a.logDebug(ctx, "cart loaded", slog.Int("cart.size", len(items)))
	return items, nil
}

func (a *API) GetInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	ctx, span := a.tracer.Start(ctx, "CartAPI.GetInventory")
	defer span.End()

	items, err := a.inner.GetInventory(ctx)
	if err != nil {
		return nil, a.handleError(ctx, span, "get_inventory", err, "failed to get inventory")
	}
	a.metrics.recordCall(ctx, "get_inventory", nil)
	span.SetAttributes(attribute.Int("inventory.size", len(items)))
	a.logDebug(ctx, "inventory loaded", slog.Int("inventory.size", len(items)))
	return items, nil
}

func (a *API) AddToCart(ctx context.Context, item domain.CartItem) (domain.CartItem, error) {
	ctx, span := a.tracer.Start(ctx, "CartAPI.AddToCart",
		trace.WithAttributes(attribute.String("item.id", item.ID), attribute.Int("item.quantity", item.Quantity)))
	defer span.End()

	created, err := a.inner.AddToCart(ctx, item)
	if err != nil {
		return domain.CartItem{}, a.handleError(ctx, span, "add_to_cart", err, "failed to add to cart", slog.String("item.id", item.ID))
	}
	a.metrics.recordCall(ctx, "add_to_cart", nil)
	return created, nil
}

func (a *API) DeleteFromCart(ctx context.Context, id string) (json.RawMessage, error) {
	ctx, span := a.tracer.Start(ctx, "CartAPI.DeleteFromCart", trace.WithAttributes(attribute.String("item.id", id)))
	defer span.End()

	body, err := a.inner.DeleteFromCart(ctx, id)
	if err != nil {
		return nil, a.handleError(ctx, span, "delete_from_cart", err, "failed to delete from cart", slog.String("item.id", id))
	}
	a.metrics.recordCall(ctx, "delete_from_cart", nil)
	return body, nil
}

func (a *API) UpdateCart(ctx context.Context, id string, newAmount int) (domain.CartItem, error) {
	ctx, span := a.tracer.Start(ctx, "CartAPI.UpdateCart",
		trace.WithAttributes(attribute.String("item.id", id), attribute.Int("item.quantity", newAmount)))
	defer span.End()

	updated, err := a.inner.UpdateCart(ctx, id, newAmount)
	if err != nil {
		return domain.CartItem{}, a.handleError(ctx, span, "update_cart", err, "failed to update cart", slog.String("item.id", id))
	}
	a.metrics.recordCall(ctx, "update_cart", nil)
	return updated, nil
}

func (a *API) Checkout(ctx context.Context) (cartapi.CheckoutResult, error) {
	ctx, span := a.tracer.Start(ctx, "CartAPI.Checkout")
	defer span.End()

	result, err := a.inner.Checkout(ctx)
	span.SetAttributes(
		attribute.Int("checkout.deleted", len(result.Deleted)),
		attribute.Int("checkout.failed", len(result.Failed)),
	)
	if err != nil {
		return result, a.handleError(ctx, span, "checkout", err, "checkout failed", slog.Int("checkout.failed", len(result.Failed)))
	}
	a.metrics.recordCall(ctx, "checkout", nil)
	a.logInfo(ctx, "checkout completed", slog.Int("checkout.deleted", len(result.Deleted)))
	return result, nil
}

func (a *API) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if a.logger == nil {
		return
	}
	a.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (a *API) logDebug(ctx context.Context, msg string, attrs ...slog.Attr) {
	if a.logger == nil {
		return
	}
	a.logger.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

func (a *API) handleError(ctx context.Context, span trace.Span, op string, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	a.metrics.recordCall(ctx, op, err)
	if a.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		a.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
	}
	return err
}

type apiMetrics struct {
	calls metric.Int64Counter
}

func newAPIMetrics(m metric.Meter) apiMetrics {
	if m == nil {
		return apiMetrics{}
	}
	calls, _ := m.Int64Counter("widget.cart_api.calls", metric.WithDescription("Cart API calls by operation and outcome"))
	return apiMetrics{calls: calls}
}

func (m apiMetrics) recordCall(ctx context.Context, op string, err error) {
	if m.calls == nil {
		return
	}
	outcome := ports.OutcomeOK
	if err != nil {
		outcome = ports.OutcomeFailed
	}
	m.calls.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op), attribute.String("outcome", outcome)))
}

var _ ports.CartAPI = (*API)(nil)
