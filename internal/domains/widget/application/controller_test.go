package application

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-cart-widget/internal/clients/http/cartapi"
	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
	"github.com/Apurer/go-cart-widget/internal/domains/widget/adapters/view"
	"github.com/Apurer/go-cart-widget/internal/domains/widget/ports"
)

var errBoom = errors.New("boom")

type fakeAPI struct {
	mu           sync.Mutex
	inventory    []domain.InventoryItem
	cart         []domain.CartItem
	added        []domain.CartItem
	deleted      []string
	inventoryErr error
	cartErr      error
	addErr       error
	deleteErrs   map[string]error
	updateErr    error
}

func (f *fakeAPI) GetCart(context.Context) ([]domain.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cartErr != nil {
		return nil, f.cartErr
	}
	return append([]domain.CartItem(nil), f.cart...), nil
}

func (f *fakeAPI) GetInventory(context.Context) ([]domain.InventoryItem, error) {
	if f.inventoryErr != nil {
		return nil, f.inventoryErr
	}
	return f.inventory, nil
}

func (f *fakeAPI) AddToCart(_ context.Context, item domain.CartItem) (domain.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return domain.CartItem{}, f.addErr
	}
	f.added = append(f.added, item)
	f.cart = append(f.cart, item)
	return item, nil
}

func (f *fakeAPI) DeleteFromCart(_ context.Context, id string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deleteErrs[id]; err != nil {
		return nil, err
	}
	f.deleted = append(f.deleted, id)
	f.cart = domain.WithoutID(f.cart, id)
	return json.RawMessage(`{}`), nil
}

func (f *fakeAPI) UpdateCart(_ context.Context, id string, newAmount int) (domain.CartItem, error) {
	if f.updateErr != nil {
		return domain.CartItem{}, f.updateErr
	}
	return domain.CartItem{ID: id, Quantity: newAmount}, nil
}

func (f *fakeAPI) Checkout(ctx context.Context) (cartapi.CheckoutResult, error) {
	items, err := f.GetCart(ctx)
	if err != nil {
		return cartapi.CheckoutResult{}, err
	}
	var result cartapi.CheckoutResult
	var errs []error
	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, item := range items {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.DeleteFromCart(ctx, item.ID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				result.Failed = append(result.Failed, item.ID)
				return
			}
			result.Deleted = append(result.Deleted, item.ID)
		}()
	}
	wg.Wait()
	return result, errors.Join(errs...)
}

type countingRecorder struct {
	mu      sync.Mutex
	renders int
	events  map[string]int
}

func (r *countingRecorder) RecordEvent(event, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.events == nil {
		r.events = map[string]int{}
	}
	r.events[event+"/"+outcome]++
}

func (r *countingRecorder) RecordRender() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renders++
}

func newTestController(t *testing.T, api *fakeAPI) (*Controller, *view.Document, *countingRecorder) {
	t.Helper()
	doc := view.NewDocument()
	recorder := &countingRecorder{}
	controller := NewController(api, doc, WithRecorder(recorder))
	return controller, doc, recorder
}

func apple() domain.InventoryItem { return domain.InventoryItem{ID: "1", Content: "Apple"} }
func pear() domain.InventoryItem  { return domain.InventoryItem{ID: "2", Content: "Pear"} }

func TestInit_LoadsAndRendersBothRegions(t *testing.T) {
	api := &fakeAPI{
		inventory: []domain.InventoryItem{apple(), pear()},
		cart:      []domain.CartItem{{ID: "2", Content: "Pear", Quantity: 2}},
	}
	controller, doc, recorder := newTestController(t, api)

	require.NoError(t, controller.Init(context.Background()))

	page := doc.Page()
	require.Len(t, page.Inventory.Entries, 2)
	require.Equal(t, []view.CartEntry{{ID: "2", Content: "Pear", Quantity: 2}}, page.Cart.Entries)
	require.Equal(t, 2, recorder.renders)
	require.Equal(t, 1, recorder.events[ports.EventLoad+"/"+ports.OutcomeOK])
}

func TestInit_PartialFailureKeepsOtherCollection(t *testing.T) {
	api := &fakeAPI{
		inventoryErr: errBoom,
		cart:         []domain.CartItem{{ID: "2", Content: "Pear", Quantity: 2}},
	}
	controller, doc, recorder := newTestController(t, api)

	err := controller.Init(context.Background())
	require.ErrorIs(t, err, errBoom)
	require.Empty(t, controller.Inventory())
	require.Len(t, controller.Cart(), 1)
	require.Len(t, doc.Page().Cart.Entries, 1)
	require.Equal(t, 1, recorder.renders)
}

func TestStepQuantity_FloorAtOneAndNoCeiling(t *testing.T) {
	controller, doc, _ := newTestController(t, &fakeAPI{inventory: []domain.InventoryItem{apple()}})
	require.NoError(t, controller.Init(context.Background()))

	qty, err := controller.StepQuantity("1", -1)
	require.NoError(t, err)
	require.Equal(t, 1, qty)

	for range 50 {
		qty, err = controller.StepQuantity("1", 1)
		require.NoError(t, err)
	}
	require.Equal(t, 51, qty)
	shown, _ := doc.Quantity("1")
	require.Equal(t, 51, shown)
	require.Empty(t, controller.Cart())

	_, err = controller.StepQuantity("9", 1)
	require.ErrorIs(t, err, ErrUnknownItem)
}

func TestAddToCart_UsesDisplayedQuantity(t *testing.T) {
	api := &fakeAPI{inventory: []domain.InventoryItem{apple()}}
	controller, doc, _ := newTestController(t, api)
	require.NoError(t, controller.Init(context.Background()))

	_, _ = controller.StepQuantity("1", 1)
	_, _ = controller.StepQuantity("1", 1)
	require.NoError(t, controller.AddToCart(context.Background(), "1"))

	want := domain.CartItem{ID: "1", Content: "Apple", Quantity: 3}
	require.Equal(t, []domain.CartItem{want}, api.added)
	require.Equal(t, []domain.CartItem{want}, controller.Cart())
	require.Equal(t, []view.CartEntry{{ID: "1", Content: "Apple", Quantity: 3}}, doc.Page().Cart.Entries)

	qty, _ := doc.Quantity("1")
	require.Equal(t, 1, qty, "re-render resets the stepper")
}

func TestAddToCart_DoesNotDeduplicate(t *testing.T) {
	api := &fakeAPI{inventory: []domain.InventoryItem{apple()}}
	controller, _, _ := newTestController(t, api)
	require.NoError(t, controller.Init(context.Background()))

	require.NoError(t, controller.AddToCart(context.Background(), "1"))
	require.NoError(t, controller.AddToCart(context.Background(), "1"))
	require.Len(t, controller.Cart(), 2)
}

func TestAddToCart_FailureLeavesStoreUnchanged(t *testing.T) {
	api := &fakeAPI{inventory: []domain.InventoryItem{apple()}, addErr: errBoom}
	controller, _, recorder := newTestController(t, api)
	require.NoError(t, controller.Init(context.Background()))
	renders := recorder.renders

	require.ErrorIs(t, controller.AddToCart(context.Background(), "1"), errBoom)
	require.Empty(t, controller.Cart())
	require.Equal(t, renders, recorder.renders)
	require.Equal(t, 1, recorder.events[ports.EventAdd+"/"+ports.OutcomeFailed])
}

func TestAddToCart_UnknownItemIssuesNoRequest(t *testing.T) {
	api := &fakeAPI{inventory: []domain.InventoryItem{apple()}}
	controller, _, _ := newTestController(t, api)
	require.NoError(t, controller.Init(context.Background()))

	require.ErrorIs(t, controller.AddToCart(context.Background(), "9"), ErrUnknownItem)
	require.Empty(t, api.added)
}

func TestAddToCart_ConcurrentAddsBothAppend(t *testing.T) {
	api := &fakeAPI{inventory: []domain.InventoryItem{apple(), pear()}}
	controller, _, _ := newTestController(t, api)
	require.NoError(t, controller.Init(context.Background()))

	var wg sync.WaitGroup
	for _, id := range []string{"1", "2"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, controller.AddToCart(context.Background(), id))
		}()
	}
	wg.Wait()

	ids := []string{}
	for _, item := range controller.Cart() {
		ids = append(ids, item.ID)
	}
	sort.Strings(ids)
	require.Equal(t, []string{"1", "2"}, ids)
}

func TestDelete_RemovesEveryEntryWithID(t *testing.T) {
	api := &fakeAPI{cart: []domain.CartItem{
		{ID: "1", Content: "Apple", Quantity: 1},
		{ID: "2", Content: "Pear", Quantity: 1},
		{ID: "1", Content: "Apple", Quantity: 5},
	}}
	controller, doc, _ := newTestController(t, api)
	require.NoError(t, controller.Init(context.Background()))

	require.NoError(t, controller.Delete(context.Background(), "1"))
	require.Equal(t, []string{"1"}, api.deleted)
	require.Equal(t, []view.CartEntry{{ID: "2", Content: "Pear", Quantity: 1}}, doc.Page().Cart.Entries)
}

func TestDelete_FailureLeavesStoreUnchanged(t *testing.T) {
	api := &fakeAPI{
		cart:       []domain.CartItem{{ID: "1", Content: "Apple", Quantity: 1}},
		deleteErrs: map[string]error{"1": errBoom},
	}
	controller, _, _ := newTestController(t, api)
	require.NoError(t, controller.Init(context.Background()))

	require.ErrorIs(t, controller.Delete(context.Background(), "1"), errBoom)
	require.Len(t, controller.Cart(), 1)
}

func TestEdit_IsNoOp(t *testing.T) {
	api := &fakeAPI{cart: []domain.CartItem{{ID: "1", Content: "Apple", Quantity: 1}}}
	controller, _, recorder := newTestController(t, api)
	require.NoError(t, controller.Init(context.Background()))
	renders := recorder.renders

	require.NoError(t, controller.Edit(context.Background(), "1"))
	require.Equal(t, renders, recorder.renders)
	require.Len(t, controller.Cart(), 1)
}

func TestUpdateQuantity(t *testing.T) {
	api := &fakeAPI{cart: []domain.CartItem{{ID: "1", Content: "Apple", Quantity: 1}}}
	controller, _, _ := newTestController(t, api)
	require.NoError(t, controller.Init(context.Background()))

	require.NoError(t, controller.UpdateQuantity(context.Background(), "1", 4))
	require.Equal(t, 4, controller.Cart()[0].Quantity)

	api.updateErr = errBoom
	require.ErrorIs(t, controller.UpdateQuantity(context.Background(), "1", 7), errBoom)
	require.Equal(t, 4, controller.Cart()[0].Quantity)
}

func TestCheckout_DeletesEachEntryAndClearsCart(t *testing.T) {
	api := &fakeAPI{cart: []domain.CartItem{
		{ID: "1", Content: "Apple", Quantity: 1},
		{ID: "2", Content: "Pear", Quantity: 3},
	}}
	controller, doc, _ := newTestController(t, api)
	require.NoError(t, controller.Init(context.Background()))

	result, err := controller.Checkout(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Deleted, 2)

	sort.Strings(api.deleted)
	require.Equal(t, []string{"1", "2"}, api.deleted)
	require.Empty(t, controller.Cart())
	require.Empty(t, doc.Page().Cart.Entries)
}

func TestCheckout_PartialFailureReconcilesWithServer(t *testing.T) {
	api := &fakeAPI{
		cart: []domain.CartItem{
			{ID: "1", Content: "Apple", Quantity: 1},
			{ID: "2", Content: "Pear", Quantity: 3},
		},
		deleteErrs: map[string]error{"2": errBoom},
	}
	controller, _, _ := newTestController(t, api)
	require.NoError(t, controller.Init(context.Background()))

	result, err := controller.Checkout(context.Background())
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, []string{"2"}, result.Failed)
	require.Equal(t, []domain.CartItem{{ID: "2", Content: "Pear", Quantity: 3}}, controller.Cart())
}

func TestCheckout_ReconcileFailureLeavesStoreUnchanged(t *testing.T) {
	api := &fakeAPI{cart: []domain.CartItem{{ID: "1", Content: "Apple", Quantity: 1}}}
	controller, _, _ := newTestController(t, api)
	require.NoError(t, controller.Init(context.Background()))

	api.cartErr = errBoom
	_, err := controller.Checkout(context.Background())
	require.ErrorIs(t, err, errBoom)
	require.Len(t, controller.Cart(), 1)
}

type failingCheckout struct{ err error }

func (f failingCheckout) Checkout(context.Context) (cartapi.CheckoutResult, error) {
	return cartapi.CheckoutResult{}, f.err
}

func TestCheckout_UsesConfiguredOrchestrator(t *testing.T) {
	api := &fakeAPI{cart: []domain.CartItem{{ID: "1", Content: "Apple", Quantity: 1}}}
	controller := NewController(api, view.NewDocument(), WithCheckout(failingCheckout{err: errBoom}), WithLogger(nil))
	require.NoError(t, controller.Init(context.Background()))

	_, err := controller.Checkout(context.Background())
	require.ErrorIs(t, err, errBoom)
	require.Empty(t, api.deleted)
	require.Len(t, controller.Cart(), 1)
}
