//go:build integration

package postgres_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/storefront-cart/internal/domain"
	pgrepo "github.com/Gunvolt24/storefront-cart/internal/repo/postgres"
	"github.com/Gunvolt24/storefront-cart/internal/testutil"
)

func startDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	// длинный контекст — только на подъём контейнера
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopPG(context.Background()) })

	// миграции
	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	pool, err := pgrepo.NewPool(ctxStart, pg.DSN, 5)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

// 1) Save → Load → Delete
func TestCartSlots_SaveLoadDelete_TC(t *testing.T) {
	t.Parallel()
	pool := startDB(t)

	// короткий контекст — на сами БД-операции
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := pgrepo.NewCartSlotRepository(pool, time.Hour)
	cartID := testutil.NewCartID()

	got, err := repo.Load(ctx, cartID)
	require.NoError(t, err)
	require.Nil(t, got)

	cart := testutil.MakeCart(3)
	payload, err := json.Marshal(cart)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, cartID, payload))

	got, err = repo.Load(ctx, cartID)
	require.NoError(t, err)
	var restored domain.Cart
	require.NoError(t, json.Unmarshal(got, &restored))
	require.Equal(t, cart, restored) // jsonb сохраняет порядок элементов массива

	require.NoError(t, repo.Delete(ctx, cartID))
	got, err = repo.Load(ctx, cartID)
	require.NoError(t, err)
	require.Nil(t, got)
}

// 2) Повторный Save перезаписывает слот, пустой массив — это слот, а не его отсутствие
func TestCartSlots_Upsert_EmptyArray_TC(t *testing.T) {
	t.Parallel()
	pool := startDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := pgrepo.NewCartSlotRepository(pool, time.Hour)
	cartID := testutil.NewCartID()

	payload, _ := json.Marshal(testutil.MakeCart(2))
	require.NoError(t, repo.Save(ctx, cartID, payload))
	require.NoError(t, repo.Save(ctx, cartID, []byte(`[]`)))

	got, err := repo.Load(ctx, cartID)
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(got))

	var rows int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM cart_slots WHERE cart_id = $1`, cartID).Scan(&rows))
	require.Equal(t, 1, rows)
}

// 3) Истёкшие слоты невидимы для Load и удаляются PurgeExpired
func TestCartSlots_ExpiryAndPurge_TC(t *testing.T) {
	t.Parallel()
	pool := startDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := pgrepo.NewCartSlotRepository(pool, time.Hour)
	expired, fresh := testutil.NewCartID(), testutil.NewCartID()

	require.NoError(t, repo.Save(ctx, expired, []byte(`[]`)))
	require.NoError(t, repo.Save(ctx, fresh, []byte(`[]`)))

	// состариваем слот напрямую
	_, err := pool.Exec(ctx, `UPDATE cart_slots SET expires_at = now() - interval '1 minute' WHERE cart_id = $1`, expired)
	require.NoError(t, err)

	got, err := repo.Load(ctx, expired)
	require.NoError(t, err)
	require.Nil(t, got)

	n, err := repo.PurgeExpired(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	got, err = repo.Load(ctx, fresh)
	require.NoError(t, err)
	require.NotNil(t, got)
}

// 4) Save продлевает срок: expires_at ≈ now() + ttl
func TestCartSlots_SaveExtendsExpiry_TC(t *testing.T) {
	t.Parallel()
	pool := startDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ttl := 7 * 24 * time.Hour
	repo := pgrepo.NewCartSlotRepository(pool, ttl)
	cartID := testutil.NewCartID()
	require.NoError(t, repo.Save(ctx, cartID, []byte(`[]`)))

	var leftSec float64
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT extract(epoch FROM expires_at - now())::float8 FROM cart_slots WHERE cart_id = $1`, cartID,
	).Scan(&leftSec))
	require.InDelta(t, ttl.Seconds(), leftSec, 60)
}
