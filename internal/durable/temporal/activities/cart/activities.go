package cart

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-cart-widget/internal/clients/http/cartapi"
	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
)

const (
	// FetchCartActivityName loads the cart entries a checkout has to remove.
	FetchCartActivityName = "cart.activities.FetchCart"
	// DeleteCartEntryActivityName removes one cart entry through the cart API.
	DeleteCartEntryActivityName = "cart.activities.DeleteCartEntry"
)

// CartEntries is the part of the cart API the checkout activities call.
type CartEntries interface {
	GetCart(ctx context.Context) ([]domain.CartItem, error)
	DeleteFromCart(ctx context.Context, id string) (json.RawMessage, error)
}

// Activities groups the activities that operate on the cart through its REST API.
type Activities struct {
	api CartEntries
}

func NewActivities(api CartEntries) *Activities {
	return &Activities{api: api}
}

// FetchCart returns the current cart entries in server order.
func (a *Activities) FetchCart(ctx context.Context) ([]domain.CartItem, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.api == nil {
		logger.Error("cart activities not initialized")
		return nil, errors.New("cart activities not initialized")
	}
	items, err := a.api.GetCart(ctx)
	if err != nil {
		logger.Error("FetchCart activity failed", "error", err)
		return nil, classify(err)
	}
	logger.Info("FetchCart activity completed", "entries", len(items))
	return items, nil
}

// DeleteCartEntry removes one entry. An entry that is already gone counts as
// removed, so a retried attempt after a lost response succeeds.
func (a *Activities) DeleteCartEntry(ctx context.Context, id string) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.api == nil {
		logger.Error("cart activities not initialized", "cartEntryId", id)
		return errors.New("cart activities not initialized")
	}
	_, err := a.api.DeleteFromCart(ctx, id)
	var notFound *cartapi.NotFoundError
	switch {
	case err == nil:
		logger.Info("DeleteCartEntry activity completed", "cartEntryId", id)
		return nil
	case errors.As(err, &notFound):
		logger.Info("cart entry already removed", "cartEntryId", id)
		return nil
	default:
		logger.Error("DeleteCartEntry activity failed", "cartEntryId", id, "error", err)
		return classify(err)
	}
}

// classify stops retries for client errors the cart API will keep returning.
func classify(err error) error {
	var httpErr *cartapi.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode >= http.StatusBadRequest && httpErr.StatusCode < http.StatusInternalServerError {
		return temporal.NewNonRetryableApplicationError(err.Error(), "CartAPIClientError", err)
	}
	return err
}
