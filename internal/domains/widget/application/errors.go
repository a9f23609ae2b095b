package application

import "errors"

var (
	// ErrUnknownItem signals an event referenced an id that is not on screen.
	ErrUnknownItem = errors.New("item is not displayed")
	// ErrNoCheckout signals the controller was built without a checkout orchestrator.
	ErrNoCheckout = errors.New("checkout not configured")
)
