package cartapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
)

// DefaultBaseURL is where the cart API listens during local development.
const DefaultBaseURL = "http://localhost:3000"

const maxErrorBody = 4 << 10

// Client issues the inventory and cart requests against the REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its transport is used as is.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout bounds every request issued by the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// CheckoutResult lists the cart entries checkout removed and the ones it could not.
type CheckoutResult struct {
	Deleted []string `json:"deleted"`
	Failed  []string `json:"failed"`
}

// NewClient instantiates the cart API client with an instrumented transport.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("cart API base URL is required")
	}
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   5 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// GetCart lists the entries currently in the cart.
func (c *Client) GetCart(ctx context.Context) ([]domain.CartItem, error) {
	var items []domain.CartItem
	if err := c.do(ctx, "get cart", http.MethodGet, "/cart", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetInventory lists the purchasable items.
func (c *Client) GetInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	if err := c.do(ctx, "get inventory", http.MethodGet, "/inventory", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart posts the item and returns the server's representation of it.
func (c *Client) AddToCart(ctx context.Context, item domain.CartItem) (domain.CartItem, error) {
	var created domain.CartItem
	if err := c.do(ctx, "add to cart", http.MethodPost, "/cart", item, &created); err != nil {
		return domain.CartItem{}, err
	}
	return created, nil
}

// DeleteFromCart removes one cart entry by id and returns the raw response body.
func (c *Client) DeleteFromCart(ctx context.Context, id string) (json.RawMessage, error) {
	path, err := entryPath(id)
	if err != nil {
		return nil, err
	}
	var body json.RawMessage
	if err := c.do(ctx, "delete from cart", http.MethodDelete, path, nil, &body); err != nil {
		return nil, notFound(id, err)
	}
	return body, nil
}

// UpdateCart persists a new quantity for an existing cart entry.
func (c *Client) UpdateCart(ctx context.Context, id string, newAmount int) (domain.CartItem, error) {
	if newAmount < 1 {
		return domain.CartItem{}, domain.ErrInvalidQuantity
	}
	path, err := entryPath(id)
	if err != nil {
		return domain.CartItem{}, err
	}
	payload := map[string]int{"quantity": newAmount}
	var updated domain.CartItem
	if err := c.do(ctx, "update cart", http.MethodPatch, path, payload, &updated); err != nil {
		return domain.CartItem{}, notFound(id, err)
	}
	return updated, nil
}

// Checkout fetches the cart and deletes every entry concurrently. Every deletion is
// attempted; the returned error joins the individual failures.
func (c *Client) Checkout(ctx context.Context) (CheckoutResult, error) {
	items, err := c.GetCart(ctx)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("checkout: %w", err)
	}
	errs := make([]error, len(items))
	var g errgroup.Group
	for i, item := range items {
		g.Go(func() error {
			_, errs[i] = c.DeleteFromCart(ctx, item.ID)
			return nil
		})
	}
	_ = g.Wait()

	var result CheckoutResult
	for i, item := range items {
		if errs[i] != nil {
			result.Failed = append(result.Failed, item.ID)
			continue
		}
		result.Deleted = append(result.Deleted, item.ID)
	}
	if joined := errors.Join(errs...); joined != nil {
		return result, fmt.Errorf("checkout: %w", joined)
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, payload, out any) error {
	if c == nil || c.httpClient == nil {
		return errors.New("cart API client not configured")
	}
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("cart API %s: encode request: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("cart API %s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &HTTPError{Op: op, StatusCode: res.StatusCode, Detail: errorDetail(res.Body)}
	}
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("cart API %s: decode response: %w", op, err)
	}
	return nil
}

func entryPath(id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", domain.ErrInvalidID
	}
	styled, err := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, id)
	if err != nil {
		return "", fmt.Errorf("encode cart entry id: %w", err)
	}
	return "/cart/" + styled, nil
}

func notFound(id string, err error) error {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
		return &NotFoundError{ID: id, Err: httpErr}
	}
	return err
}

// errorDetail extracts a message from a problem+json body, falling back to the raw text.
func errorDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var problem struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if json.Unmarshal(raw, &problem) == nil {
		switch {
		case problem.Detail != "":
			return problem.Detail
		case problem.Error != "":
			return problem.Error
		case problem.Title != "":
			return problem.Title
		}
	}
	return strings.TrimSpace(string(raw))
}
