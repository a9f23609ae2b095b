package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Apurer/go-cart-widget/internal/domains/cart/domain"
	"github.com/Apurer/go-cart-widget/internal/domains/cart/ports"
)

const defaultPrefix = "cart-widget:"

var _ ports.Repository = (*Repository)(nil)

// Entries live in a hash keyed by id; a list next to it keeps insertion order.
var addCartItemScript = redis.NewScript(`
if redis.call('HSETNX', KEYS[1], ARGV[1], ARGV[2]) == 0 then
	return 0
end
redis.call('RPUSH', KEYS[2], ARGV[1])
return 1
`)

var deleteCartItemScript = redis.NewScript(`
if redis.call('HDEL', KEYS[1], ARGV[1]) == 0 then
	return 0
end
redis.call('LREM', KEYS[2], 0, ARGV[1])
return 1
`)

// Repository persists inventory and cart entries in Redis.
type Repository struct {
	client redis.UniversalClient
	prefix string
}

type Option func(*Repository)

// WithKeyPrefix namespaces every key the repository touches.
func WithKeyPrefix(prefix string) Option {
	return func(r *Repository) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

func NewRepository(client redis.UniversalClient, opts ...Option) *Repository {
	r := &Repository{client: client, prefix: defaultPrefix}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Repository) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	if err := r.list(ctx, r.key("inventory:items"), r.key("inventory:order"), func(raw []byte) error {
		var item domain.InventoryItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return err
		}
		items = append(items, item)
		return nil
	}); err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.InventoryItem{}
	}
	return items, nil
}

// ReplaceInventory swaps the whole catalog in one MULTI/EXEC block.
func (r *Repository) ReplaceInventory(ctx context.Context, items []domain.InventoryItem) error {
	if err := r.ensureClient(); err != nil {
		return err
	}
	itemsKey, orderKey := r.key("inventory:items"), r.key("inventory:order")
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, itemsKey, orderKey)
		for _, item := range items {
			raw, err := json.Marshal(item)
			if err != nil {
				return err
			}
			pipe.HSet(ctx, itemsKey, item.ID, raw)
			pipe.RPush(ctx, orderKey, item.ID)
		}
		return nil
	})
	return err
}

func (r *Repository) ListCart(ctx context.Context) ([]domain.CartItem, error) {
	var items []domain.CartItem
	if err := r.list(ctx, r.key("cart:items"), r.key("cart:order"), func(raw []byte) error {
		var item domain.CartItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return err
		}
		items = append(items, item)
		return nil
	}); err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	return items, nil
}

func (r *Repository) AddCartItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error) {
	if err := r.ensureClient(); err != nil {
		return domain.CartItem{}, err
	}
	raw, err := json.Marshal(item)
	if err != nil {
		return domain.CartItem{}, err
	}
	added, err := addCartItemScript.Run(ctx, r.client,
		[]string{r.key("cart:items"), r.key("cart:order")}, item.ID, raw).Int()
	if err != nil {
		return domain.CartItem{}, err
	}
	if added == 0 {
		return domain.CartItem{}, ports.ErrConflict
	}
	return item, nil
}

// UpdateCartItem rewrites the stored entry under WATCH so a concurrent delete wins cleanly.
func (r *Repository) UpdateCartItem(ctx context.Context, id string, quantity int) (domain.CartItem, error) {
	if err := r.ensureClient(); err != nil {
		return domain.CartItem{}, err
	}
	itemsKey := r.key("cart:items")
	var updated domain.CartItem
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.HGet(ctx, itemsKey, id).Bytes()
		if errors.Is(err, redis.Nil) {
			return ports.ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := json.Unmarshal(raw, &updated); err != nil {
			return fmt.Errorf("decode cart entry %q: %w", id, err)
		}
		updated.Quantity = quantity
		encoded, err := json.Marshal(updated)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, itemsKey, id, encoded)
			return nil
		})
		return err
	}, itemsKey)
	if err != nil {
		return domain.CartItem{}, err
	}
	return updated, nil
}

func (r *Repository) DeleteCartItem(ctx context.Context, id string) error {
	if err := r.ensureClient(); err != nil {
		return err
	}
	deleted, err := deleteCartItemScript.Run(ctx, r.client,
		[]string{r.key("cart:items"), r.key("cart:order")}, id).Int()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) list(ctx context.Context, itemsKey, orderKey string, decode func([]byte) error) error {
	if err := r.ensureClient(); err != nil {
		return err
	}
	ids, err := r.client.LRange(ctx, orderKey, 0, -1).Result()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	values, err := r.client.HMGet(ctx, itemsKey, ids...).Result()
	if err != nil {
		return err
	}
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// order list and hash drifted apart; skip the dangling id
			continue
		}
		if err := decode([]byte(raw)); err != nil {
			return fmt.Errorf("decode entry %q: %w", ids[i], err)
		}
	}
	return nil
}

func (r *Repository) key(name string) string {
	return r.prefix + name
}

func (r *Repository) ensureClient() error {
	if r == nil || r.client == nil {
		return errors.New("redis cart repository not configured")
	}
	return nil
}
