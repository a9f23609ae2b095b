package domain

import (
	"errors"
	"strings"
)

var (
	ErrInvalidID       = errors.New("item id is required")
	ErrInvalidContent  = errors.New("item content is required")
	ErrInvalidQuantity = errors.New("quantity must be at least one")
	ErrDuplicateID     = errors.New("item id is already in use")
)

// InventoryItem is a purchasable catalog entry owned by the server.
type InventoryItem struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// CartItem is an inventory item selected with a quantity.
type CartItem struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	Quantity int    `json:"quantity"`
}

// NewCartItem builds a cart entry from an inventory item and a chosen quantity.
func NewCartItem(item InventoryItem, quantity int) (CartItem, error) {
	cartItem := CartItem{ID: item.ID, Content: item.Content, Quantity: quantity}
	if err := cartItem.Validate(); err != nil {
		return CartItem{}, err
	}
	return cartItem, nil
}

// Validate enforces the cart entry invariants.
func (c CartItem) Validate() error {
	if strings.TrimSpace(c.Content) == "" {
		return ErrInvalidContent
	}
	if c.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

// Validate enforces the inventory entry invariants.
func (i InventoryItem) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return ErrInvalidID
	}
	if strings.TrimSpace(i.Content) == "" {
		return ErrInvalidContent
	}
	return nil
}

// FindInventory returns the first inventory entry with the given id.
func FindInventory(items []InventoryItem, id string) (InventoryItem, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return InventoryItem{}, false
}

// WithoutID returns a new slice holding every cart entry whose id differs from id.
func WithoutID(items []CartItem, id string) []CartItem {
	out := make([]CartItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}
