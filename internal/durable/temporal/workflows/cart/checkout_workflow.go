package cart

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-cart-widget/internal/clients/http/cartapi"
	"github.com/Apurer/go-cart-widget/internal/durable/temporal/sequences"
)

const (
	// CheckoutWorkflowName is the public identifier for registering the workflow.
	CheckoutWorkflowName = "cart.workflows.Checkout"
	// CheckoutTaskQueue is the queue consumed by the worker processing checkouts.
	CheckoutTaskQueue = "CART_CHECKOUT"
)

// CheckoutWorkflowInput carries the caller's trace for log correlation.
type CheckoutWorkflowInput struct {
	TraceID string
}

// CheckoutWorkflow empties the cart and reports which entries were removed.
func CheckoutWorkflow(ctx workflow.Context, input CheckoutWorkflowInput) (cartapi.CheckoutResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("CheckoutWorkflow started", withTraceID(input.TraceID)...)
	result, err := sequences.RunCheckoutSequence(ctx)
	if err != nil {
		logger.Error("CheckoutWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return cartapi.CheckoutResult{}, err
	}
	logger.Info("CheckoutWorkflow completed",
		withTraceID(input.TraceID, "deleted", len(result.Deleted), "failed", len(result.Failed))...)
	return result, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
