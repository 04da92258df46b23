package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/storefront-cart/internal/ports"
	goredis "github.com/redis/go-redis/v9"
)

var _ ports.CartStorage = (*CartSlotRepository)(nil)

// CartSlotRepository — слот корзины как строковый ключ <prefix><cart_id> с EX.
// Истечение делает сам Redis, отдельная чистка не нужна.
type CartSlotRepository struct {
	client goredis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewCartSlotRepository(client goredis.Cmdable, prefix string, ttl time.Duration) *CartSlotRepository {
	return &CartSlotRepository{client: client, prefix: prefix, ttl: ttl}
}

func (r *CartSlotRepository) key(cartID string) string { return r.prefix + cartID }

func (r *CartSlotRepository) Load(ctx context.Context, cartID string) ([]byte, error) {
	payload, err := r.client.Get(ctx, r.key(cartID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get cart slot: %w", err)
	}
	return payload, nil
}

// Save — SET key payload EX ttl: каждая запись продлевает срок.
func (r *CartSlotRepository) Save(ctx context.Context, cartID string, payload []byte) error {
	if err := r.client.Set(ctx, r.key(cartID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart slot: %w", err)
	}
	return nil
}

func (r *CartSlotRepository) Delete(ctx context.Context, cartID string) error {
	if err := r.client.Del(ctx, r.key(cartID)).Err(); err != nil {
		return fmt.Errorf("redis del cart slot: %w", err)
	}
	return nil
}
