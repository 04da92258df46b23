package memory

import (
	"bytes"
	"context"
	"time"

	"github.com/Gunvolt24/storefront-cart/internal/ports"
)

var (
	_ ports.CartStorage       = (*SlotStorage)(nil)
	_ ports.ExpiredSlotPurger = (*SlotStorage)(nil)
)

// SlotStorage — сохранённые слоты корзин в памяти процесса (драйвер memory).
// Срок жизни считается от последней записи, чтение его не продлевает.
type SlotStorage struct {
	slots *LRUCacheTTL[[]byte]
}

func NewSlotStorage(capacity int, ttl time.Duration) *SlotStorage {
	return &SlotStorage{
		slots: NewLRUCacheTTL(Options[[]byte]{
			Name:     "cart_slots",
			Capacity: capacity,
			TTL:      ttl,
			Clone:    bytes.Clone,
		}),
	}
}

func (s *SlotStorage) Load(_ context.Context, cartID string) ([]byte, error) {
	payload, ok := s.slots.Get(cartID)
	if !ok {
		return nil, nil
	}
	return payload, nil
}

func (s *SlotStorage) Save(_ context.Context, cartID string, payload []byte) error {
	s.slots.Set(cartID, payload)
	return nil
}

func (s *SlotStorage) Delete(_ context.Context, cartID string) error {
	s.slots.Delete(cartID)
	return nil
}

func (s *SlotStorage) PurgeExpired(_ context.Context) (int64, error) {
	return int64(s.slots.PurgeExpired()), nil
}
