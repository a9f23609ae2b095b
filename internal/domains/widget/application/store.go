package application

import (
	"slices"

	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
)

// Store holds the inventory and cart collections and notifies a single subscriber
// every time either collection is replaced. It is not safe for concurrent use; the
// controller serializes access.
type Store struct {
	inventory []domain.InventoryItem
	cart      []domain.CartItem
	onChange  func()
}

func NewStore() *Store {
	return &Store{
		inventory: []domain.InventoryItem{},
		cart:      []domain.CartItem{},
	}
}

// Inventory returns a copy of the current inventory.
func (s *Store) Inventory() []domain.InventoryItem {
	return slices.Clone(s.inventory)
}

// Cart returns a copy of the current cart.
func (s *Store) Cart() []domain.CartItem {
	return slices.Clone(s.cart)
}

// SetInventory replaces the inventory and notifies the subscriber before returning.
func (s *Store) SetInventory(items []domain.InventoryItem) {
	s.inventory = orEmpty(slices.Clone(items))
	s.notify()
}

// SetCart replaces the cart and notifies the subscriber before returning.
func (s *Store) SetCart(items []domain.CartItem) {
	s.cart = orEmpty(slices.Clone(items))
	s.notify()
}

// Subscribe registers the change callback, replacing any previous one.
func (s *Store) Subscribe(callback func()) {
	s.onChange = callback
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
