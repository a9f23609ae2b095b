package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"

	"github.com/Apurer/go-cart-widget/internal/clients/http/cartapi"
	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
	cartactivities "github.com/Apurer/go-cart-widget/internal/durable/temporal/activities/cart"
)

type fakeCart struct {
	mu      sync.Mutex
	items   []domain.CartItem
	failIDs map[string]error
	deletes []string
	getErr  error
}

func (f *fakeCart) GetCart(context.Context) ([]domain.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return append([]domain.CartItem(nil), f.items...), nil
}

func (f *fakeCart) DeleteFromCart(_ context.Context, id string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	if err := f.failIDs[id]; err != nil {
		return nil, err
	}
	return json.RawMessage(`{}`), nil
}

func runCheckout(t *testing.T, api *fakeCart) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	acts := cartactivities.NewActivities(api)
	env.RegisterActivityWithOptions(acts.FetchCart, activity.RegisterOptions{Name: cartactivities.FetchCartActivityName})
	env.RegisterActivityWithOptions(acts.DeleteCartEntry, activity.RegisterOptions{Name: cartactivities.DeleteCartEntryActivityName})
	env.ExecuteWorkflow(CheckoutWorkflow, CheckoutWorkflowInput{TraceID: "trace"})
	require.True(t, env.IsWorkflowCompleted())
	return env
}

func TestCheckoutWorkflow_DeletesEveryEntry(t *testing.T) {
	api := &fakeCart{items: []domain.CartItem{
		{ID: "1", Content: "Apple", Quantity: 1},
		{ID: "2", Content: "Pear", Quantity: 2},
	}}

	env := runCheckout(t, api)

	require.NoError(t, env.GetWorkflowError())
	var result cartapi.CheckoutResult
	require.NoError(t, env.GetWorkflowResult(&result))
	assert.Equal(t, []string{"1", "2"}, result.Deleted)
	assert.Empty(t, result.Failed)
	assert.ElementsMatch(t, []string{"1", "2"}, api.deletes)
}

func TestCheckoutWorkflow_ReportsFailedEntries(t *testing.T) {
	api := &fakeCart{
		items: []domain.CartItem{
			{ID: "1", Content: "Apple", Quantity: 1},
			{ID: "2", Content: "Pear", Quantity: 2},
		},
		failIDs: map[string]error{
			"2": &cartapi.HTTPError{Op: "deleteFromCart", StatusCode: http.StatusBadRequest},
		},
	}

	env := runCheckout(t, api)

	require.NoError(t, env.GetWorkflowError())
	var result cartapi.CheckoutResult
	require.NoError(t, env.GetWorkflowResult(&result))
	assert.Equal(t, []string{"1"}, result.Deleted)
	assert.Equal(t, []string{"2"}, result.Failed)
}

func TestCheckoutWorkflow_MissingEntryCountsAsDeleted(t *testing.T) {
	api := &fakeCart{
		items: []domain.CartItem{{ID: "1", Content: "Apple", Quantity: 1}},
		failIDs: map[string]error{
			"1": &cartapi.NotFoundError{ID: "1", Err: &cartapi.HTTPError{Op: "deleteFromCart", StatusCode: http.StatusNotFound}},
		},
	}

	env := runCheckout(t, api)

	require.NoError(t, env.GetWorkflowError())
	var result cartapi.CheckoutResult
	require.NoError(t, env.GetWorkflowResult(&result))
	assert.Equal(t, []string{"1"}, result.Deleted)
}

func TestCheckoutWorkflow_FetchFailureFailsWorkflow(t *testing.T) {
	api := &fakeCart{getErr: &cartapi.HTTPError{Op: "getCart", StatusCode: http.StatusForbidden}}

	env := runCheckout(t, api)

	require.Error(t, env.GetWorkflowError())
	assert.Empty(t, api.deletes)
}
