package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
)

var (
	ErrNotFound = errors.New("cart entry not found")
	ErrConflict = errors.New("cart entry already exists")
)

// Repository persists the inventory catalog and the cart entries in insertion order.
type Repository interface {
	ListInventory(ctx context.Context) ([]domain.InventoryItem, error)
	ReplaceInventory(ctx context.Context, items []domain.InventoryItem) error
	ListCart(ctx context.Context) ([]domain.CartItem, error)
	AddCartItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error)
	UpdateCartItem(ctx context.Context, id string, quantity int) (domain.CartItem, error)
	DeleteCartItem(ctx context.Context, id string) error
}
