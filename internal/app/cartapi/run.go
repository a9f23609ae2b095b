package cartapi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	cartapiserver "github.com/Apurer/go-cart-widget/go"
	cartmemory "github.com/Apurer/go-cart-widget/internal/domains/cart/adapters/memory"
	cartobs "github.com/Apurer/go-cart-widget/internal/domains/cart/adapters/observability"
	cartpostgres "github.com/Apurer/go-cart-widget/internal/domains/cart/adapters/persistence/postgres"
	cartredis "github.com/Apurer/go-cart-widget/internal/domains/cart/adapters/persistence/redis"
	cartapp "github.com/Apurer/go-cart-widget/internal/domains/cart/application"
	cartports "github.com/Apurer/go-cart-widget/internal/domains/cart/ports"
	"github.com/Apurer/go-cart-widget/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-cart-widget/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-cart-widget/internal/platform/postgres"
)

const serviceName = "cart-api"

// Run boots the reference cart REST API with observability and the configured repository.
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

	repo, cleanupRepo := buildRepository(ctx, cfg, logger)
	defer cleanupRepo()
	service := cartobs.New(
		cartapp.NewService(repo),
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)
	if err := seedInventory(ctx, cfg, service, logger); err != nil {
		return err
	}

	router := NewRouter(service)
	addr := ":" + cfg.Port
	logger.Info("cart API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("cart API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// NewRouter wires the cart API routes behind recovery and tracing middleware.
// Middleware is attached before any route is registered so every route's
// handler chain includes it.
func NewRouter(service cartports.Service, traceOpts ...otelgin.Option) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName, traceOpts...))
	return cartapiserver.NewRouterWithGinEngine(router, cartapiserver.ApiHandleFunctions{
		CartAPI:      cartapiserver.NewCartAPI(service),
		InventoryAPI: cartapiserver.NewInventoryAPI(service),
	})
}

// buildRepository picks Redis, then Postgres, then memory, falling back to memory
// whenever a configured store is unreachable.
func buildRepository(ctx context.Context, cfg Config, logger *slog.Logger) (cartports.Repository, func()) {
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("failed to connect to redis, falling back to memory", slog.String("error", err.Error()))
			_ = rdb.Close()
			return cartmemory.NewRepository(), func() {}
		}
		logger.Info("cart repository configured with redis", slog.String("addr", cfg.RedisAddr))
		return cartredis.NewRepository(rdb), func() { _ = rdb.Close() }
	}
	db, cleanup := platformpostgres.ConnectDSN(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		logger.Info("cart repository configured in memory")
		return cartmemory.NewRepository(), func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to migrate postgres schema, falling back to memory", slog.String("error", err.Error()))
		cleanup()
		return cartmemory.NewRepository(), func() {}
	}
	logger.Info("cart repository configured with postgres")
	return cartpostgres.NewRepository(db), cleanup
}

// seedInventory loads the catalog from the seed file when one is configured, and
// otherwise fills an empty catalog with DefaultInventory.
func seedInventory(ctx context.Context, cfg Config, service cartports.Service, logger *slog.Logger) error {
	if cfg.SeedFile != "" {
		items, err := LoadSeed(cfg.SeedFile)
		if err != nil {
			return err
		}
		logger.Info("seeding inventory from file", slog.String("path", cfg.SeedFile), slog.Int("items", len(items)))
		return service.SeedInventory(ctx, items)
	}
	existing, err := service.ListInventory(ctx)
	if err != nil {
		return fmt.Errorf("failed to read inventory: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	logger.Info("seeding default inventory", slog.Int("items", len(DefaultInventory)))
	return service.SeedInventory(ctx, DefaultInventory)
}
