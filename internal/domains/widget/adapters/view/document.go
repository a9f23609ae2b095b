package view

import (
	"io"
	"slices"

	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
	"github.com/Apurer/go-cart-widget/internal/domains/widget/ports"
)

// Page is the data rendered by the "page" template.
type Page struct {
	Inventory InventoryRegion
	Cart      CartRegion
}

// Document holds the regions currently on screen, including the stepper text the
// user has changed since the last render. It is not safe for concurrent use.
type Document struct {
	inventory InventoryRegion
	cart      CartRegion
}

func NewDocument() *Document {
	return &Document{}
}

// MountInventory replaces the inventory region wholesale.
func (d *Document) MountInventory(region InventoryRegion) {
	d.inventory = InventoryRegion{Entries: slices.Clone(region.Entries)}
}

// MountCart replaces the cart region wholesale.
func (d *Document) MountCart(region CartRegion) {
	d.cart = CartRegion{Entries: slices.Clone(region.Entries)}
}

// Quantity reads the stepper value shown for the first inventory entry with id.
func (d *Document) Quantity(id string) (int, bool) {
	for _, entry := range d.inventory.Entries {
		if entry.ID == id {
			return entry.Quantity, true
		}
	}
	return 0, false
}

// SetQuantity overwrites the stepper value shown for the first inventory entry with id.
func (d *Document) SetQuantity(id string, quantity int) bool {
	for i := range d.inventory.Entries {
		if d.inventory.Entries[i].ID == id {
			d.inventory.Entries[i].Quantity = quantity
			return true
		}
	}
	return false
}

// Page returns a copy of what is currently displayed.
func (d *Document) Page() Page {
	return Page{
		Inventory: InventoryRegion{Entries: slices.Clone(d.inventory.Entries)},
		Cart:      CartRegion{Entries: slices.Clone(d.cart.Entries)},
	}
}

// WritePage renders the full page.
func (d *Document) WritePage(w io.Writer) error {
	return templates.ExecuteTemplate(w, "page", d.Page())
}

// WriteInventoryHTML renders the mounted inventory region.
func (d *Document) WriteInventoryHTML(w io.Writer) error {
	return d.inventory.WriteHTML(w)
}

// WriteCartHTML renders the mounted cart region.
func (d *Document) WriteCartHTML(w io.Writer) error {
	return d.cart.WriteHTML(w)
}

// RenderInventory renders items and mounts them as the inventory region.
func (d *Document) RenderInventory(items []domain.InventoryItem) {
	d.MountInventory(RenderInventory(items))
}

// RenderCart renders items and mounts them as the cart region.
func (d *Document) RenderCart(items []domain.CartItem) {
	d.MountCart(RenderCart(items))
}

var _ ports.View = (*Document)(nil)
