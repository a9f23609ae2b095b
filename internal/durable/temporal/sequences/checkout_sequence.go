package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-cart-widget/internal/clients/http/cartapi"
	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
	cartactivities "github.com/Apurer/go-cart-widget/internal/durable/temporal/activities/cart"
)

// RunCheckoutSequence loads the cart, then removes every entry with one activity per
// entry, all in flight at once. Failed entries are reported, not returned as errors.
func RunCheckoutSequence(ctx workflow.Context) (cartapi.CheckoutResult, error) {
	logger := workflow.GetLogger(ctx)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var items []domain.CartItem
	if err := workflow.ExecuteActivity(ctx, cartactivities.FetchCartActivityName).Get(ctx, &items); err != nil {
		logger.Error("checkout sequence failed to fetch cart", "error", err)
		return cartapi.CheckoutResult{}, err
	}
	logger.Info("checkout sequence started", "entries", len(items))

	futures := make([]workflow.Future, len(items))
	for i, item := range items {
		futures[i] = workflow.ExecuteActivity(ctx, cartactivities.DeleteCartEntryActivityName, item.ID)
	}
	var result cartapi.CheckoutResult
	for i, item := range items {
		if err := futures[i].Get(ctx, nil); err != nil {
			logger.Warn("checkout could not remove cart entry", "cartEntryId", item.ID, "error", err)
			result.Failed = append(result.Failed, item.ID)
			continue
		}
		result.Deleted = append(result.Deleted, item.ID)
	}
	logger.Info("checkout sequence completed", "deleted", len(result.Deleted), "failed", len(result.Failed))
	return result, nil
}
