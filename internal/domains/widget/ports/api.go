package ports

import (
	"context"
	"encoding/json"

	"github.com/Apurer/go-cart-widget/internal/clients/http/cartapi"
	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
)

// CartAPI is the REST surface the widget controller depends on.
type CartAPI interface {
	GetCart(ctx context.Context) ([]domain.CartItem, error)
	GetInventory(ctx context.Context) ([]domain.InventoryItem, error)
	AddToCart(ctx context.Context, item domain.CartItem) (domain.CartItem, error)
	DeleteFromCart(ctx context.Context, id string) (json.RawMessage, error)
	UpdateCart(ctx context.Context, id string, newAmount int) (domain.CartItem, error)
	Checkout(ctx context.Context) (cartapi.CheckoutResult, error)
}

var _ CartAPI = (*cartapi.Client)(nil)
