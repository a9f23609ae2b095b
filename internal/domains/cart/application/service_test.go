package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-cart-widget/internal/domains/cart/adapters/memory"
	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
	"github.com/Apurer/go-cart-widget/internal/domains/cart/ports"
)

func TestAddItem_AssignsIDWhenMissing(t *testing.T) {
	svc := NewService(memory.NewRepository(), WithIDGenerator(func() string { return "generated" }))

	saved, err := svc.AddItem(context.Background(), domain.CartItem{Content: "Apple", Quantity: 2})
	require.NoError(t, err)
	require.Equal(t, "generated", saved.ID)

	cart, err := svc.ListCart(context.Background())
	require.NoError(t, err)
	require.Equal(t, []domain.CartItem{saved}, cart)
}

func TestAddItem_KeepsClientID(t *testing.T) {
	svc := NewService(memory.NewRepository())
	saved, err := svc.AddItem(context.Background(), domain.CartItem{ID: " 1 ", Content: "Apple", Quantity: 2})
	require.NoError(t, err)
	require.Equal(t, "1", saved.ID)
}

func TestAddItem_RejectsDuplicateID(t *testing.T) {
	svc := NewService(memory.NewRepository())
	item := domain.CartItem{ID: "1", Content: "Apple", Quantity: 1}
	_, err := svc.AddItem(context.Background(), item)
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), item)
	require.ErrorIs(t, err, ports.ErrConflict)
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	svc := NewService(memory.NewRepository())
	_, err := svc.AddItem(context.Background(), domain.CartItem{ID: "1", Content: "Apple"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestRemoveItem(t *testing.T) {
	svc := NewService(memory.NewRepository())
	_, err := svc.AddItem(context.Background(), domain.CartItem{ID: "1", Content: "Apple", Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(context.Background(), "1"))
	require.ErrorIs(t, svc.RemoveItem(context.Background(), "1"), ports.ErrNotFound)
	require.ErrorIs(t, svc.RemoveItem(context.Background(), ""), ErrInvalidInput)
}

func TestUpdateQuantity(t *testing.T) {
	svc := NewService(memory.NewRepository())
	_, err := svc.AddItem(context.Background(), domain.CartItem{ID: "1", Content: "Apple", Quantity: 1})
	require.NoError(t, err)

	updated, err := svc.UpdateQuantity(context.Background(), "1", 6)
	require.NoError(t, err)
	require.Equal(t, 6, updated.Quantity)

	_, err = svc.UpdateQuantity(context.Background(), "2", 6)
	require.ErrorIs(t, err, ports.ErrNotFound)

	_, err = svc.UpdateQuantity(context.Background(), "1", 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSeedInventory(t *testing.T) {
	svc := NewService(memory.NewRepository())
	items := []domain.InventoryItem{{ID: "1", Content: "Apple"}, {ID: "2", Content: "Pear"}}
	require.NoError(t, svc.SeedInventory(context.Background(), items))

	listed, err := svc.ListInventory(context.Background())
	require.NoError(t, err)
	require.Equal(t, items, listed)

	require.ErrorIs(t, svc.SeedInventory(context.Background(), []domain.InventoryItem{{ID: "3"}}), ErrInvalidInput)
}

func TestSeedInventory_RejectsDuplicateIDs(t *testing.T) {
	svc := NewService(memory.NewRepository())
	original := []domain.InventoryItem{{ID: "1", Content: "Apple"}}
	require.NoError(t, svc.SeedInventory(context.Background(), original))

	err := svc.SeedInventory(context.Background(), []domain.InventoryItem{
		{ID: "1", Content: "Apple"},
		{ID: "2", Content: "Pear"},
		{ID: "1", Content: "Apple again"},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrDuplicateID)

	listed, err := svc.ListInventory(context.Background())
	require.NoError(t, err)
	require.Equal(t, original, listed)
}
