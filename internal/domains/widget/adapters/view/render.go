// Package view renders the inventory and cart regions of the widget page.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
)

// InitialQuantity is the stepper value every freshly rendered inventory entry shows.
const InitialQuantity = 1

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("view").
		Funcs(template.FuncMap{"pathEscape": url.PathEscape}).
		ParseFS(templateFS, "templates/*.tmpl"),
)

// Templates exposes the parsed page templates ("page", "inventory", "cart").
func Templates() *template.Template {
	return templates
}

// InventoryEntry is one rendered inventory list item.
type InventoryEntry struct {
	ID       string
	Content  string
	Quantity int
}

// InventoryRegion is the rendered inventory list.
type InventoryRegion struct {
	Entries []InventoryEntry
}

// CartEntry is one rendered cart list item.
type CartEntry struct {
	ID       string
	Content  string
	Quantity int
}

// Label is the text shown for the entry.
func (e CartEntry) Label() string {
	return fmt.Sprintf("%s x %d", e.Content, e.Quantity)
}

// CartRegion is the rendered cart list.
type CartRegion struct {
	Entries []CartEntry
}

// RenderInventory maps inventory items to list entries with a fresh stepper.
func RenderInventory(items []domain.InventoryItem) InventoryRegion {
	entries := make([]InventoryEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, InventoryEntry{ID: item.ID, Content: item.Content, Quantity: InitialQuantity})
	}
	return InventoryRegion{Entries: entries}
}

// RenderCart maps cart items to list entries.
func RenderCart(items []domain.CartItem) CartRegion {
	entries := make([]CartEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, CartEntry{ID: item.ID, Content: item.Content, Quantity: item.Quantity})
	}
	return CartRegion{Entries: entries}
}

// WriteHTML writes the region markup.
func (r InventoryRegion) WriteHTML(w io.Writer) error {
	return templates.ExecuteTemplate(w, "inventory", r)
}

// WriteHTML writes the region markup.
func (r CartRegion) WriteHTML(w io.Writer) error {
	return templates.ExecuteTemplate(w, "cart", r)
}
