package application

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
)

func TestStore_NotifiesOncePerWrite(t *testing.T) {
	store := NewStore()
	var calls int
	var seenCart [][]domain.CartItem
	var seenInventory [][]domain.InventoryItem
	store.Subscribe(func() {
		calls++
		seenCart = append(seenCart, store.Cart())
		seenInventory = append(seenInventory, store.Inventory())
	})

	inventory := []domain.InventoryItem{{ID: "1", Content: "Apple"}}
	store.SetInventory(inventory)
	require.Equal(t, 1, calls)
	require.Equal(t, inventory, seenInventory[0])

	cart := []domain.CartItem{{ID: "1", Content: "Apple", Quantity: 2}}
	store.SetCart(cart)
	require.Equal(t, 2, calls)
	require.Equal(t, cart, seenCart[1])

	store.SetCart(nil)
	require.Equal(t, 3, calls)
	require.Empty(t, seenCart[2])
	require.NotNil(t, store.Cart())
}

func TestStore_SubscribeReplacesPreviousCallback(t *testing.T) {
	store := NewStore()
	var first, second int
	store.Subscribe(func() { first++ })
	store.Subscribe(func() { second++ })

	store.SetInventory(nil)
	require.Zero(t, first)
	require.Equal(t, 1, second)
}

func TestStore_WritesWithoutSubscriber(t *testing.T) {
	store := NewStore()
	store.SetCart([]domain.CartItem{{ID: "1", Content: "Apple", Quantity: 1}})
	require.Len(t, store.Cart(), 1)
}

func TestStore_AccessorsReturnCopies(t *testing.T) {
	store := NewStore()
	store.SetCart([]domain.CartItem{{ID: "1", Content: "Apple", Quantity: 1}})
	cart := store.Cart()
	cart[0].Quantity = 99
	require.Equal(t, 1, store.Cart()[0].Quantity)
}
