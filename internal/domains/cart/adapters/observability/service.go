package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
	"github.com/Apurer/go-cart-widget/internal/domains/cart/ports"
)

const tracerName = "github.com/Apurer/go-cart-widget/internal/domains/cart/adapters/observability/service"

// Service decorates the cart service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core cart service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.ListInventory")
	defer span.End()

	items, err := s.inner.ListInventory(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list inventory")
	}
	span.SetAttributes(attribute.Int("inventory.size", len(items)))
	return items, nil
}

func (s *Service) ListCart(ctx context.Context) ([]domain.CartItem, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.ListCart")
	defer span.End()

	items, err := s.inner.ListCart(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list cart")
	}
	span.SetAttributes(attribute.Int("cart.size", len(items)))
	return items, nil
}

func (s *Service) AddItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddItem",
		trace.WithAttributes(attribute.String("item.id", item.ID), attribute.Int("item.quantity", item.Quantity)))
	defer span.End()

	s.logInfo(ctx, "adding cart entry", slog.String("item.id", item.ID), slog.Int("item.quantity", item.Quantity))
	saved, err := s.inner.AddItem(ctx, item)
	if err != nil {
		return domain.CartItem{}, s.handleError(ctx, span, err, "failed to add cart entry", slog.String("item.id", item.ID))
	}
	s.metrics.recordAdded(ctx)
	s.logInfo(ctx, "cart entry added", slog.String("item.id", saved.ID))
	return saved, nil
}

func (s *Service) RemoveItem(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "CartService.RemoveItem", trace.WithAttributes(attribute.String("item.id", id)))
	defer span.End()

	s.logInfo(ctx, "removing cart entry", slog.String("item.id", id))
	if err := s.inner.RemoveItem(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to remove cart entry", slog.String("item.id", id))
	}
	s.metrics.recordRemoved(ctx)
	s.logInfo(ctx, "cart entry removed", slog.String("item.id", id))
	return nil
}

func (s *Service) UpdateQuantity(ctx context.Context, id string, quantity int) (domain.CartItem, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.UpdateQuantity",
		trace.WithAttributes(attribute.String("item.id", id), attribute.Int("item.quantity", quantity)))
	defer span.End()

	updated, err := s.inner.UpdateQuantity(ctx, id, quantity)
	if err != nil {
		return domain.CartItem{}, s.handleError(ctx, span, err, "failed to update cart entry", slog.String("item.id", id))
	}
	s.logInfo(ctx, "cart entry updated", slog.String("item.id", id), slog.Int("item.quantity", quantity))
	return updated, nil
}

func (s *Service) SeedInventory(ctx context.Context, items []domain.InventoryItem) error {
	ctx, span := s.tracer.Start(ctx, "CartService.SeedInventory", trace.WithAttributes(attribute.Int("inventory.size", len(items))))
	defer span.End()

	if err := s.inner.SeedInventory(ctx, items); err != nil {
		return s.handleError(ctx, span, err, "failed to seed inventory")
	}
	s.logInfo(ctx, "inventory seeded", slog.Int("inventory.size", len(items)))
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	added   metric.Int64Counter
	removed metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	added, _ := m.Int64Counter("cart.service.entries_added", metric.WithDescription("Number of cart entries added"))
	removed, _ := m.Int64Counter("cart.service.entries_removed", metric.WithDescription("Number of cart entries removed"))
	return serviceMetrics{added: added, removed: removed}
}

func (m serviceMetrics) recordAdded(ctx context.Context) {
	if m.added != nil {
		m.added.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRemoved(ctx context.Context) {
	if m.removed != nil {
		m.removed.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
