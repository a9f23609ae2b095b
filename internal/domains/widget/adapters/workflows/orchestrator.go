package workflows

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-cart-widget/internal/clients/http/cartapi"
	"github.com/Apurer/go-cart-widget/internal/domains/widget/ports"
	cartworkflows "github.com/Apurer/go-cart-widget/internal/durable/temporal/workflows/cart"
)

var (
	_ ports.CheckoutOrchestrator = (*TemporalCheckout)(nil)
	_ ports.CheckoutOrchestrator = (*InlineCheckout)(nil)
)

// ErrCheckoutIncomplete reports a durable checkout that left entries in the cart.
var ErrCheckoutIncomplete = errors.New("checkout incomplete")

// DefaultCheckoutTimeout bounds a workflow checkout when no timeout is configured.
const DefaultCheckoutTimeout = 2 * time.Minute

// TemporalCheckout runs checkout as a workflow on a Temporal cluster.
type TemporalCheckout struct {
	client    client.Client
	taskQueue string
	timeout   time.Duration
}

type TemporalOption func(*TemporalCheckout)

// WithExecutionTimeout caps both the workflow execution and the wait for its
// result. Non-positive values keep DefaultCheckoutTimeout.
func WithExecutionTimeout(timeout time.Duration) TemporalOption {
	return func(o *TemporalCheckout) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// NewTemporalCheckout wires a Temporal client into the orchestrator.
func NewTemporalCheckout(c client.Client, opts ...TemporalOption) *TemporalCheckout {
	o := &TemporalCheckout{
		client:    c,
		taskQueue: cartworkflows.CheckoutTaskQueue,
		timeout:   DefaultCheckoutTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Checkout starts the checkout workflow and waits for its result. The wait
// ends after the execution timeout even when no worker picks the workflow up.
func (o *TemporalCheckout) Checkout(ctx context.Context) (cartapi.CheckoutResult, error) {
	if o == nil || o.client == nil {
		return cartapi.CheckoutResult{}, errors.New("temporal checkout not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:                       "cart-checkout-" + traceComponent,
		TaskQueue:                o.taskQueue,
		WorkflowExecutionTimeout: o.timeout,
	}
	run, err := o.client.ExecuteWorkflow(ctx, options, cartworkflows.CheckoutWorkflow,
		cartworkflows.CheckoutWorkflowInput{TraceID: traceComponent})
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return cartapi.CheckoutResult{}, fmt.Errorf("checkout: %w", err)
		}
		// Same request delivered twice: wait on the run already in flight.
		run = o.client.GetWorkflow(ctx, options.ID, alreadyStarted.RunId)
	}
	var result cartapi.CheckoutResult
	if err := run.Get(ctx, &result); err != nil {
		return cartapi.CheckoutResult{}, fmt.Errorf("checkout: %w", err)
	}
	if len(result.Failed) > 0 {
		return result, fmt.Errorf("%w: could not remove %s", ErrCheckoutIncomplete, strings.Join(result.Failed, ", "))
	}
	return result, nil
}

// InlineCheckout calls the cart API directly without durable orchestration.
type InlineCheckout struct {
	api ports.CheckoutOrchestrator
}

// NewInlineCheckout wraps anything that can check out synchronously, usually the API client.
func NewInlineCheckout(api ports.CheckoutOrchestrator) *InlineCheckout {
	return &InlineCheckout{api: api}
}

func (o *InlineCheckout) Checkout(ctx context.Context) (cartapi.CheckoutResult, error) {
	if o == nil || o.api == nil {
		return cartapi.CheckoutResult{}, errors.New("inline checkout not configured")
	}
	return o.api.Checkout(ctx)
}

func workflowTraceComponent(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() && spanCtx.TraceID().IsValid() {
		return spanCtx.TraceID().String() + "-" + spanCtx.SpanID().String()
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}
