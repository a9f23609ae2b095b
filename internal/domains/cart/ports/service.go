package ports

import (
	"context"

	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
)

// Service exposes the cart REST use cases to adapters.
type Service interface {
	ListInventory(ctx context.Context) ([]domain.InventoryItem, error)
	ListCart(ctx context.Context) ([]domain.CartItem, error)
	AddItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error)
	RemoveItem(ctx context.Context, id string) error
	UpdateQuantity(ctx context.Context, id string, quantity int) (domain.CartItem, error)
	SeedInventory(ctx context.Context, items []domain.InventoryItem) error
}
