package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	appworker "github.com/Apurer/go-cart-widget/internal/app/worker"
	"github.com/Apurer/go-cart-widget/internal/clients/http/cartapi"
	cartactivities "github.com/Apurer/go-cart-widget/internal/durable/temporal/activities/cart"
	cartworkflows "github.com/Apurer/go-cart-widget/internal/durable/temporal/workflows/cart"
	platformobservability "github.com/Apurer/go-cart-widget/internal/platform/observability"
	platformtemporal "github.com/Apurer/go-cart-widget/internal/platform/temporal"
)

func main() {
	cfg, err := appworker.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	const serviceName = "cart-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cartClient, err := cartapi.NewClient(cfg.CartAPIURL, cartapi.WithTimeout(cfg.CartAPITimeout))
	if err != nil {
		logger.Error("failed to build cart API client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	activities := cartactivities.NewActivities(cartClient)

	temporalClient, err := platformtemporal.Dial(instruments, platformtemporal.Options{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Component: "temporal-worker",
	})
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, cartworkflows.CheckoutTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(cartworkflows.CheckoutWorkflow, workflow.RegisterOptions{Name: cartworkflows.CheckoutWorkflowName})
	w.RegisterActivityWithOptions(activities.FetchCart, activity.RegisterOptions{Name: cartactivities.FetchCartActivityName})
	w.RegisterActivityWithOptions(activities.DeleteCartEntry, activity.RegisterOptions{Name: cartactivities.DeleteCartEntryActivityName})

	logger.Info("worker listening",
		slog.String("taskQueue", cartworkflows.CheckoutTaskQueue),
		slog.String("namespace", cfg.TemporalNamespace),
		slog.String("cartApi", cfg.CartAPIURL))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
