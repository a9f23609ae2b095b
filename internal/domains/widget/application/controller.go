package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Apurer/go-cart-widget/internal/clients/http/cartapi"
	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
	"github.com/Apurer/go-cart-widget/internal/domains/widget/ports"
)

// Controller turns user events into API calls and store writes. It owns the store.
//
// All store and view access happens while holding mu, which plays the role of the
// page's event loop. The lock is released across network calls, so completions of
// concurrent events interleave in whatever order they resolve.
type Controller struct {
	mu       sync.Mutex
	api      ports.CartAPI
	checkout ports.CheckoutOrchestrator
	store    *Store
	view     ports.View
	logger   *slog.Logger
	recorder ports.EventRecorder
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithCheckout replaces the default inline checkout.
func WithCheckout(checkout ports.CheckoutOrchestrator) Option {
	return func(c *Controller) {
		c.checkout = checkout
	}
}

func WithRecorder(recorder ports.EventRecorder) Option {
	return func(c *Controller) {
		c.recorder = recorder
	}
}

// NewController builds a controller with a fresh store. Call Init to load data.
func NewController(api ports.CartAPI, view ports.View, opts ...Option) *Controller {
	c := &Controller{
		api:      api,
		checkout: api,
		store:    NewStore(),
		view:     view,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.recorder == nil {
		c.recorder = nopRecorder{}
	}
	return c
}

// Init subscribes the renderer to the store, then loads inventory and cart
// concurrently. Each result is written to the store as it arrives.
func (c *Controller) Init(ctx context.Context) error {
	c.mu.Lock()
	c.store.Subscribe(c.render)
	c.mu.Unlock()
	return c.load(ctx)
}

// Refresh reloads inventory and cart from the API.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.load(ctx)
}

// OnLoop runs fn while holding the event loop, for consistent reads of the view.
func (c *Controller) OnLoop(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn()
}

// Inventory returns the inventory currently held by the store.
func (c *Controller) Inventory() []domain.InventoryItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Inventory()
}

// Cart returns the cart currently held by the store.
func (c *Controller) Cart() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Cart()
}

// StepQuantity moves the displayed quantity of an inventory entry by delta, never
// below one. Nothing is persisted.
func (c *Controller) StepQuantity(id string, delta int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	current, ok := c.view.Quantity(id)
	if !ok {
		c.recorder.RecordEvent(ports.EventStep, ports.OutcomeIgnored)
		return 0, ErrUnknownItem
	}
	next := current + delta
	if next < 1 {
		next = 1
	}
	c.view.SetQuantity(id, next)
	c.recorder.RecordEvent(ports.EventStep, ports.OutcomeOK)
	return next, nil
}

// AddToCart posts the inventory entry with its displayed quantity and appends it to
// the cart once the API confirms. Repeated adds produce repeated entries.
func (c *Controller) AddToCart(ctx context.Context, id string) error {
	c.mu.Lock()
	quantity, shown := c.view.Quantity(id)
	item, found := domain.FindInventory(c.store.Inventory(), id)
	c.mu.Unlock()
	if !shown || !found {
		c.logDebug(ctx, "add ignored for unknown item", slog.String("item.id", id))
		c.recorder.RecordEvent(ports.EventAdd, ports.OutcomeIgnored)
		return ErrUnknownItem
	}
	cartItem, err := domain.NewCartItem(item, quantity)
	if err != nil {
		return c.fail(ctx, ports.EventAdd, "invalid cart item", err, slog.String("item.id", id))
	}

	if _, err := c.api.AddToCart(detach(ctx), cartItem); err != nil {
		return c.fail(ctx, ports.EventAdd, "failed to add to cart", err, slog.String("item.id", id))
	}

	c.mu.Lock()
	c.store.SetCart(append(c.store.Cart(), cartItem))
	c.mu.Unlock()
	c.recorder.RecordEvent(ports.EventAdd, ports.OutcomeOK)
	c.logInfo(ctx, "added to cart", slog.String("item.id", id), slog.String("item.content", item.Content), slog.Int("item.quantity", quantity))
	return nil
}

// Delete removes a cart entry through the API, then drops every entry with that id.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if _, err := c.api.DeleteFromCart(detach(ctx), id); err != nil {
		return c.fail(ctx, ports.EventDelete, "failed to delete from cart", err, slog.String("item.id", id))
	}
	c.mu.Lock()
	c.store.SetCart(domain.WithoutID(c.store.Cart(), id))
	c.mu.Unlock()
	c.recorder.RecordEvent(ports.EventDelete, ports.OutcomeOK)
	c.logInfo(ctx, "deleted from cart", slog.String("item.id", id))
	return nil
}

// Edit is bound to the edit control and intentionally does nothing.
func (c *Controller) Edit(ctx context.Context, id string) error {
	c.logDebug(ctx, "edit requested", slog.String("item.id", id))
	c.recorder.RecordEvent(ports.EventEdit, ports.OutcomeIgnored)
	return nil
}

// UpdateQuantity persists a new quantity and applies it to every matching cart entry.
func (c *Controller) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	if _, err := c.api.UpdateCart(detach(ctx), id, quantity); err != nil {
		return c.fail(ctx, ports.EventUpdate, "failed to update cart", err, slog.String("item.id", id), slog.Int("item.quantity", quantity))
	}
	c.mu.Lock()
	cart := c.store.Cart()
	for i := range cart {
		if cart[i].ID == id {
			cart[i].Quantity = quantity
		}
	}
	c.store.SetCart(cart)
	c.mu.Unlock()
	c.recorder.RecordEvent(ports.EventUpdate, ports.OutcomeOK)
	return nil
}

// Checkout empties the cart server-side. On success the store's cart is cleared; on
// any failure the cart is reloaded from the API so the page shows what remains.
func (c *Controller) Checkout(ctx context.Context) (cartapi.CheckoutResult, error) {
	if c.checkout == nil {
		return cartapi.CheckoutResult{}, ErrNoCheckout
	}
	ctx = detach(ctx)
	result, err := c.checkout.Checkout(ctx)
	if err == nil {
		c.mu.Lock()
		c.store.SetCart(nil)
		c.mu.Unlock()
		c.recorder.RecordEvent(ports.EventCheckout, ports.OutcomeOK)
		c.logInfo(ctx, "all items removed from cart", slog.Int("deleted", len(result.Deleted)))
		return result, nil
	}

	err = c.fail(ctx, ports.EventCheckout, "checkout failed", err,
		slog.Int("deleted", len(result.Deleted)), slog.Int("failed", len(result.Failed)))
	remaining, fetchErr := c.api.GetCart(ctx)
	if fetchErr != nil {
		c.logError(ctx, "failed to reconcile cart after checkout", fetchErr)
		return result, errors.Join(err, fetchErr)
	}
	c.mu.Lock()
	c.store.SetCart(remaining)
	c.mu.Unlock()
	return result, err
}

func (c *Controller) load(ctx context.Context) error {
	ctx = detach(ctx)
	var inventoryErr, cartErr error
	var g errgroup.Group
	g.Go(func() error {
		items, err := c.api.GetInventory(ctx)
		if err != nil {
			inventoryErr = c.fail(ctx, ports.EventLoad, "failed to load inventory", err)
			return nil
		}
		c.mu.Lock()
		c.store.SetInventory(items)
		c.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		items, err := c.api.GetCart(ctx)
		if err != nil {
			cartErr = c.fail(ctx, ports.EventLoad, "failed to load cart", err)
			return nil
		}
		c.mu.Lock()
		c.store.SetCart(items)
		c.mu.Unlock()
		return nil
	})
	_ = g.Wait()
	if err := errors.Join(inventoryErr, cartErr); err != nil {
		return err
	}
	c.recorder.RecordEvent(ports.EventLoad, ports.OutcomeOK)
	return nil
}

// render redraws both regions. It runs as the store's subscriber, under mu.
func (c *Controller) render() {
	c.view.RenderInventory(c.store.Inventory())
	c.view.RenderCart(c.store.Cart())
	c.recorder.RecordRender()
}

func (c *Controller) fail(ctx context.Context, event, msg string, err error, attrs ...slog.Attr) error {
	c.recorder.RecordEvent(event, ports.OutcomeFailed)
	c.logError(ctx, msg, err, attrs...)
	return err
}

func (c *Controller) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	c.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (c *Controller) logDebug(ctx context.Context, msg string, attrs ...slog.Attr) {
	c.logger.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

func (c *Controller) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	c.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

// detach keeps request values such as the trace span but drops cancellation, so a
// request that has been issued always runs to completion.
func detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

type nopRecorder struct{}

func (nopRecorder) RecordEvent(string, string) {}
func (nopRecorder) RecordRender()              {}
