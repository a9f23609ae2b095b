package cartapi

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
)

// DefaultInventory is served when no seed file is configured.
var DefaultInventory = []domain.InventoryItem{
	{ID: "1", Content: "Apple"},
	{ID: "2", Content: "Banana"},
	{ID: "3", Content: "Orange"},
	{ID: "4", Content: "Mango"},
	{ID: "5", Content: "Pineapple"},
}

// seedFile matches the db.json layout of a JSON-server style fixture. Only the
// inventory collection is read.
type seedFile struct {
	Inventory []domain.InventoryItem `json:"inventory"`
}

// LoadSeed reads the inventory from path. The file is either a bare JSON array or an
// object with an "inventory" array.
func LoadSeed(path string) ([]domain.InventoryItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []domain.InventoryItem
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}
	var file seedFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode seed %s: %w", path, err)
	}
	if file.Inventory == nil {
		return nil, fmt.Errorf("seed %s has no inventory collection", path)
	}
	return file.Inventory, nil
}
