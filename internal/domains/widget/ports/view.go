package ports

import "github.com/Apurer/go-cart-widget/internal/domains/cart/domain"

// View is the display surface the controller draws on and reads stepper values from.
type View interface {
	RenderInventory(items []domain.InventoryItem)
	RenderCart(items []domain.CartItem)
	Quantity(id string) (int, bool)
	SetQuantity(id string, quantity int) bool
}

// EventRecorder counts controller activity.
type EventRecorder interface {
	RecordEvent(event, outcome string)
	RecordRender()
}

// Event names reported to the EventRecorder.
const (
	EventStep     = "step"
	EventAdd      = "add"
	EventDelete   = "delete"
	EventEdit     = "edit"
	EventUpdate   = "update"
	EventCheckout = "checkout"
	EventLoad     = "load"
)

// Outcomes reported to the EventRecorder.
const (
	OutcomeOK      = "ok"
	OutcomeFailed  = "failed"
	OutcomeIgnored = "ignored"
)
