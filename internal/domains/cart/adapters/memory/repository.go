package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
	"github.com/Apurer/go-cart-widget/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory cart persistence adapter.
type Repository struct {
	mu        sync.RWMutex
	inventory []domain.InventoryItem
	cart      []domain.CartItem
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) ListInventory(_ context.Context) ([]domain.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.InventoryItem{}, r.inventory...), nil
}

func (r *Repository) ReplaceInventory(_ context.Context, items []domain.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inventory = slices.Clone(items)
	return nil
}

func (r *Repository) ListCart(_ context.Context) ([]domain.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.CartItem{}, r.cart...), nil
}

func (r *Repository) AddCartItem(_ context.Context, item domain.CartItem) (domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(item.ID) >= 0 {
		return domain.CartItem{}, ports.ErrConflict
	}
	r.cart = append(r.cart, item)
	return item, nil
}

func (r *Repository) UpdateCartItem(_ context.Context, id string, quantity int) (domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return domain.CartItem{}, ports.ErrNotFound
	}
	r.cart[i].Quantity = quantity
	return r.cart[i], nil
}

func (r *Repository) DeleteCartItem(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return ports.ErrNotFound
	}
	r.cart = slices.Delete(r.cart, i, i+1)
	return nil
}

func (r *Repository) indexOf(id string) int {
	return slices.IndexFunc(r.cart, func(item domain.CartItem) bool { return item.ID == id })
}
