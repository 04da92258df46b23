package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/storefront-cart/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	_ ports.CartStorage       = (*CartSlotRepository)(nil)
	_ ports.ExpiredSlotPurger = (*CartSlotRepository)(nil)
)

// CartSlotRepository — слоты корзин в таблице cart_slots.
// Срок жизни — expires_at, сдвигается при каждой записи; истёкшие строки невидимы для Load.
type CartSlotRepository struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// NewCartSlotRepository - конструктор CartSlotRepository.
func NewCartSlotRepository(pool *pgxpool.Pool, ttl time.Duration) *CartSlotRepository {
	return &CartSlotRepository{pool: pool, ttl: ttl}
}

func (r *CartSlotRepository) Load(ctx context.Context, cartID string) ([]byte, error) {
	var payload []byte
	err := r.pool.QueryRow(ctx, `
		SELECT payload
		FROM cart_slots
		WHERE cart_id = $1 AND expires_at > now()
	`, cartID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select cart slot: %w", err)
	}
	return payload, nil
}

// Save — upsert слота; expires_at = now() + ttl.
func (r *CartSlotRepository) Save(ctx context.Context, cartID string, payload []byte) error {
	if cartID == "" {
		return errors.New("cart_id is required")
	}
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO cart_slots (cart_id, payload, updated_at, expires_at)
		VALUES ($1, $2::jsonb, now(), now() + make_interval(secs => $3))
		ON CONFLICT (cart_id) DO UPDATE SET
			payload    = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at,
			expires_at = EXCLUDED.expires_at
	`, cartID, string(payload), r.ttl.Seconds()); err != nil {
		return fmt.Errorf("upsert cart slot: %w", err)
	}
	return nil
}

func (r *CartSlotRepository) Delete(ctx context.Context, cartID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM cart_slots WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("delete cart slot: %w", err)
	}
	return nil
}

// PurgeExpired — удаляет истёкшие слоты, возвращает их число.
func (r *CartSlotRepository) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cart_slots WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("purge expired cart slots: %w", err)
	}
	return tag.RowsAffected(), nil
}
