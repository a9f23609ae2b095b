package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
	"github.com/Apurer/go-cart-widget/internal/domains/cart/ports"
)

// Service orchestrates the cart REST use cases.
type Service struct {
	repo  ports.Repository
	newID func() string
}

type Option func(*Service)

// WithIDGenerator overrides how ids are assigned to cart entries posted without one.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, newID: uuid.NewString}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.repo.ListInventory(ctx)
}

func (s *Service) ListCart(ctx context.Context) ([]domain.CartItem, error) {
	return s.repo.ListCart(ctx)
}

// AddItem stores a cart entry, assigning an id when the caller sent none.
func (s *Service) AddItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error) {
	item.ID = strings.TrimSpace(item.ID)
	if item.ID == "" {
		item.ID = s.newID()
	}
	if err := item.Validate(); err != nil {
		return domain.CartItem{}, mapError(err)
	}
	return s.repo.AddCartItem(ctx, item)
}

func (s *Service) RemoveItem(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return mapError(domain.ErrInvalidID)
	}
	return s.repo.DeleteCartItem(ctx, id)
}

func (s *Service) UpdateQuantity(ctx context.Context, id string, quantity int) (domain.CartItem, error) {
	if strings.TrimSpace(id) == "" {
		return domain.CartItem{}, mapError(domain.ErrInvalidID)
	}
	if quantity < 1 {
		return domain.CartItem{}, mapError(domain.ErrInvalidQuantity)
	}
	return s.repo.UpdateCartItem(ctx, id, quantity)
}

// SeedInventory replaces the catalog after validating every entry. Ids must
// be unique across the batch.
func (s *Service) SeedInventory(ctx context.Context, items []domain.InventoryItem) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return mapError(err)
		}
		if _, ok := seen[item.ID]; ok {
			return mapError(fmt.Errorf("%w: %q", domain.ErrDuplicateID, item.ID))
		}
		seen[item.ID] = struct{}{}
	}
	return s.repo.ReplaceInventory(ctx, items)
}

var _ ports.Service = (*Service)(nil)
