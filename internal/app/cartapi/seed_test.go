package cartapi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
)

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadSeed_Array(t *testing.T) {
	items, err := LoadSeed(writeSeed(t, `[{"id":"1","content":"Kiwi"}]`))

	require.NoError(t, err)
	assert.Equal(t, []domain.InventoryItem{{ID: "1", Content: "Kiwi"}}, items)
}

func TestLoadSeed_DatabaseFile(t *testing.T) {
	items, err := LoadSeed(writeSeed(t, `{"inventory":[{"id":"a","content":"Fig"}],"cart":[]}`))

	require.NoError(t, err)
	assert.Equal(t, []domain.InventoryItem{{ID: "a", Content: "Fig"}}, items)
}

func TestLoadSeed_Errors(t *testing.T) {
	_, err := LoadSeed(writeSeed(t, `{"cart":[]}`))
	require.Error(t, err)

	_, err = LoadSeed(writeSeed(t, `not json`))
	require.Error(t, err)

	_, err = LoadSeed(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	for _, key := range []string{"PORT", "POSTGRES_DSN", "REDIS_ADDR", "CART_API_SEED"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)

	t.Setenv("POSTGRES_DSN", "postgres://localhost/cart")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	_, err = LoadConfig()
	require.Error(t, err)

	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("CART_API_SEED", filepath.Join(t.TempDir(), "missing.json"))
	_, err = LoadConfig()
	require.Error(t, err)
}
