package ports

import (
	"context"

	"github.com/Apurer/go-cart-widget/internal/clients/http/cartapi"
)

// CheckoutOrchestrator runs the composite checkout either inline or durably.
type CheckoutOrchestrator interface {
	Checkout(ctx context.Context) (cartapi.CheckoutResult, error)
}
