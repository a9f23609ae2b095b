//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
	"github.com/Apurer/go-cart-widget/internal/domains/cart/ports"
	"github.com/Apurer/go-cart-widget/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-cart-widget/internal/platform/postgres"
)

func setupCartPostgresContainer(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("cart_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(context.Background()) })

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := platformpostgres.Connect(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestRepository_CartLifecycle(t *testing.T) {
	repo := NewRepository(setupCartPostgresContainer(t))
	ctx := context.Background()

	_, err := repo.AddCartItem(ctx, domain.CartItem{ID: "2", Content: "Pear", Quantity: 1})
	require.NoError(t, err)
	_, err = repo.AddCartItem(ctx, domain.CartItem{ID: "1", Content: "Apple", Quantity: 3})
	require.NoError(t, err)

	_, err = repo.AddCartItem(ctx, domain.CartItem{ID: "1", Content: "Apple", Quantity: 1})
	require.ErrorIs(t, err, ports.ErrConflict)

	cart, err := repo.ListCart(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.CartItem{
		{ID: "2", Content: "Pear", Quantity: 1},
		{ID: "1", Content: "Apple", Quantity: 3},
	}, cart)

	updated, err := repo.UpdateCartItem(ctx, "2", 5)
	require.NoError(t, err)
	require.Equal(t, 5, updated.Quantity)

	require.NoError(t, repo.DeleteCartItem(ctx, "2"))
	require.ErrorIs(t, repo.DeleteCartItem(ctx, "2"), ports.ErrNotFound)
	_, err = repo.UpdateCartItem(ctx, "2", 1)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ReplaceInventory(t *testing.T) {
	repo := NewRepository(setupCartPostgresContainer(t))
	ctx := context.Background()

	require.NoError(t, repo.ReplaceInventory(ctx, []domain.InventoryItem{{ID: "1", Content: "Apple"}, {ID: "2", Content: "Pear"}}))
	require.NoError(t, repo.ReplaceInventory(ctx, []domain.InventoryItem{{ID: "3", Content: "Plum"}}))

	inventory, err := repo.ListInventory(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.InventoryItem{{ID: "3", Content: "Plum"}}, inventory)
}
