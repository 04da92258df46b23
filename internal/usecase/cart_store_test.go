package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/Gunvolt24/storefront-cart/internal/cache/memory"
	"github.com/Gunvolt24/storefront-cart/internal/domain"
	"github.com/Gunvolt24/storefront-cart/internal/ports/mocks"
	"github.com/Gunvolt24/storefront-cart/internal/usecase"
	"github.com/Gunvolt24/storefront-cart/pkg/validate"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

const cartID = "7f3c1a52-8a4e-4f5e-9a70-1f2b7c3d4e5f"

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func bottle() domain.CartItem {
	return domain.CartItem{ID: "p1", Name: "Bottle", Price: 500, Quantity: 1, Image: "/a.jpg", Stock: 2}
}

func cap5() domain.CartItem {
	return domain.CartItem{ID: "p2", Name: "Cap", Price: 150, Quantity: 1, Image: "/b.jpg", Stock: 5}
}

func newStore(t *testing.T) (*usecase.CartStore, *memory.SlotStorage) {
	t.Helper()
	storage := memory.NewSlotStorage(100, 7*24*time.Hour)
	st := usecase.NewCartStore(cartID, storage, validate.NewCartValidator(), noopLogger{})
	require.NoError(t, st.Restore(context.Background()))
	return st, storage
}

// reload — «перезагрузка страницы»: новый стор поверх того же слота.
func reload(t *testing.T, storage *memory.SlotStorage) *usecase.CartStore {
	t.Helper()
	st := usecase.NewCartStore(cartID, storage, validate.NewCartValidator(), noopLogger{})
	require.NoError(t, st.Restore(context.Background()))
	return st
}

func TestCartStore_ExampleScenario(t *testing.T) {
	ctx := context.Background()
	st, _ := newStore(t)

	require.True(t, st.AddToCart(ctx, bottle()))
	items := st.Items()
	require.Len(t, items, 1)
	require.Equal(t, 1, items[0].Quantity)
	require.Equal(t, 2, items[0].Stock)

	require.True(t, st.AddToCart(ctx, bottle()))
	require.Equal(t, 2, st.Items()[0].Quantity)

	// третий раз — потолок stock=2
	require.False(t, st.AddToCart(ctx, bottle()))
	require.Equal(t, 2, st.Items()[0].Quantity)

	require.Equal(t, 2, st.TotalItems())

	st.UpdateQuantity(ctx, "p1", 10)
	require.Equal(t, 2, st.Items()[0].Quantity)

	st.RemoveFromCart(ctx, "p1")
	require.Empty(t, st.Items())
	require.Equal(t, 0, st.TotalItems())
}

func TestCartStore_AddNeverExceedsStock(t *testing.T) {
	ctx := context.Background()
	for _, stock := range []int{1, 2, 5, 17} {
		st, _ := newStore(t)
		item := domain.CartItem{ID: "p", Name: "x", Price: 1, Stock: stock}

		for i := 0; i < stock; i++ {
			require.True(t, st.AddToCart(ctx, item), "add #%d stock=%d", i+1, stock)
		}
		for i := 0; i < 3; i++ {
			require.False(t, st.AddToCart(ctx, item))
		}
		require.Equal(t, stock, st.Items()[0].Quantity)
	}
}

// Предельные значения stock/quantity не должны ломать потолок и портить слот.
func TestCartStore_HugeStockAndQuantity(t *testing.T) {
	ctx := context.Background()
	st, storage := newStore(t)

	huge := domain.CartItem{ID: "big", Name: "Bulk", Price: 1, Quantity: 1, Stock: math.MaxInt}
	require.False(t, st.AddToCart(ctx, huge))
	require.Empty(t, st.Items())

	item := domain.CartItem{ID: "big", Name: "Bulk", Price: 1, Quantity: 1, Stock: domain.MaxStock}
	require.True(t, st.AddToCart(ctx, item))

	st.UpdateQuantity(ctx, "big", math.MaxInt)
	require.Equal(t, domain.MaxStock, st.Items()[0].Quantity)

	// на потолке: отказ, quantity не меняется
	require.False(t, st.AddToCart(ctx, item))
	require.Equal(t, domain.MaxStock, st.Items()[0].Quantity)
	require.Equal(t, domain.MaxStock, st.TotalItems())

	again := reload(t, storage)
	require.Len(t, again.Items(), 1)
	require.Equal(t, domain.MaxStock, again.Items()[0].Quantity)
}

func TestCartStore_ExistingItemUsesRecordedStock(t *testing.T) {
	ctx := context.Background()
	st, _ := newStore(t)

	require.True(t, st.AddToCart(ctx, bottle()))
	require.True(t, st.AddToCart(ctx, bottle()))

	// присланный stock больше, но потолок — записанный в корзине
	more := bottle()
	more.Stock = 100
	require.False(t, st.AddToCart(ctx, more))
	require.Equal(t, 2, st.Items()[0].Stock)
}

func TestCartStore_AddIgnoresIncomingQuantity(t *testing.T) {
	ctx := context.Background()
	st, _ := newStore(t)

	item := cap5()
	item.Quantity = 4
	require.True(t, st.AddToCart(ctx, item))
	require.Equal(t, 1, st.Items()[0].Quantity)
}

func TestCartStore_AddRejectsOutOfStockOrInvalidItem(t *testing.T) {
	ctx := context.Background()
	st, _ := newStore(t)

	soldOut := bottle()
	soldOut.Stock = 0
	require.False(t, st.AddToCart(ctx, soldOut))

	noID := bottle()
	noID.ID = ""
	require.False(t, st.AddToCart(ctx, noID))

	require.Empty(t, st.Items())
}

func TestCartStore_AddThenRemoveYieldsEmpty(t *testing.T) {
	ctx := context.Background()
	st, storage := newStore(t)

	require.True(t, st.AddToCart(ctx, bottle()))
	st.RemoveFromCart(ctx, "p1")
	require.Empty(t, st.Items())

	// пустая корзина после удаления хранится как [], ключ остаётся
	raw, err := storage.Load(ctx, cartID)
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(raw))
}

func TestCartStore_RemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st, _ := newStore(t)
	require.True(t, st.AddToCart(ctx, cap5()))

	st.RemoveFromCart(ctx, "missing")
	st.RemoveFromCart(ctx, "missing")
	require.Len(t, st.Items(), 1)

	st.RemoveFromCart(ctx, "p2")
	st.RemoveFromCart(ctx, "p2")
	require.Empty(t, st.Items())
}

func TestCartStore_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	st, _ := newStore(t)
	require.True(t, st.AddToCart(ctx, cap5()))
	require.True(t, st.AddToCart(ctx, bottle()))

	st.UpdateQuantity(ctx, "p2", 3)
	require.Equal(t, 3, st.Items()[0].Quantity)

	st.UpdateQuantity(ctx, "p2", 50)
	require.Equal(t, 5, st.Items()[0].Quantity)

	// неизвестный id — no-op
	st.UpdateQuantity(ctx, "missing", 2)
	require.Len(t, st.Items(), 2)

	// q <= 0 удаляет строку
	st.UpdateQuantity(ctx, "p2", 0)
	items := st.Items()
	require.Len(t, items, 1)
	require.Equal(t, "p1", items[0].ID)

	st.UpdateQuantity(ctx, "p1", -3)
	require.Empty(t, st.Items())
}

func TestCartStore_InsertionOrderKept(t *testing.T) {
	ctx := context.Background()
	st, _ := newStore(t)

	require.True(t, st.AddToCart(ctx, cap5()))
	require.True(t, st.AddToCart(ctx, bottle()))
	require.True(t, st.AddToCart(ctx, cap5()))

	items := st.Items()
	require.Equal(t, []string{"p2", "p1"}, []string{items[0].ID, items[1].ID})
}

func TestCartStore_ClearDeletesSlot(t *testing.T) {
	ctx := context.Background()
	st, storage := newStore(t)
	require.True(t, st.AddToCart(ctx, bottle()))

	st.ClearCart(ctx)
	require.Empty(t, st.Items())

	raw, err := storage.Load(ctx, cartID)
	require.NoError(t, err)
	require.Nil(t, raw, "slot key must be deleted, not overwritten with []")

	require.Empty(t, reload(t, storage).Items())
}

func TestCartStore_PersistedAcrossReload(t *testing.T) {
	ctx := context.Background()
	st, storage := newStore(t)

	require.True(t, st.AddToCart(ctx, bottle()))
	require.True(t, st.AddToCart(ctx, cap5()))
	st.UpdateQuantity(ctx, "p2", 4)

	again := reload(t, storage)
	require.Equal(t, st.Items(), again.Items())
	require.Equal(t, "1100.00", again.Subtotal().StringFixed(2))

	raw, err := storage.Load(ctx, cartID)
	require.NoError(t, err)
	var persisted []map[string]any
	require.NoError(t, json.Unmarshal(raw, &persisted))
	require.Len(t, persisted, 2)
	for _, key := range []string{"id", "name", "price", "quantity", "image", "stock"} {
		require.Contains(t, persisted[0], key)
	}
}

func TestCartStore_RestoreDiscardsCorruptSlot(t *testing.T) {
	ctx := context.Background()

	cases := map[string]string{
		"malformed":        `[{"id":"p1",`,
		"quantity > stock": `[{"id":"p1","name":"Bottle","price":500,"quantity":9,"image":"","stock":2}]`,
		"duplicate ids":    `[{"id":"p1","quantity":1,"stock":2},{"id":"p1","quantity":1,"stock":2}]`,
		"unknown field":    `[{"id":"p1","quantity":1,"stock":2,"color":"red"}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			storage := memory.NewSlotStorage(10, time.Hour)
			require.NoError(t, storage.Save(ctx, cartID, []byte(raw)))

			st := reload(t, storage)
			require.Empty(t, st.Items())

			got, err := storage.Load(ctx, cartID)
			require.NoError(t, err)
			require.Nil(t, got, "corrupt slot must be discarded")
		})
	}
}

func TestCartStore_RestoreStorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mocks.NewMockCartStorage(ctrl)
	storage.EXPECT().Load(gomock.Any(), cartID).Return(nil, errors.New("db down"))

	st := usecase.NewCartStore(cartID, storage, validate.NewCartValidator(), noopLogger{})
	require.Error(t, st.Restore(context.Background()))
}

func TestCartStore_SaveFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mocks.NewMockCartStorage(ctrl)
	ctx := context.Background()

	storage.EXPECT().Load(gomock.Any(), cartID).Return(nil, nil)
	storage.EXPECT().Save(gomock.Any(), cartID, gomock.Any()).Return(errors.New("quota exceeded")).Times(2)
	storage.EXPECT().Delete(gomock.Any(), cartID).Return(errors.New("quota exceeded"))

	st := usecase.NewCartStore(cartID, storage, validate.NewCartValidator(), noopLogger{})
	require.NoError(t, st.Restore(ctx))

	// состояние в памяти меняется, несмотря на сбой записи
	require.True(t, st.AddToCart(ctx, bottle()))
	st.UpdateQuantity(ctx, "p1", 2)
	require.Equal(t, 2, st.TotalItems())

	st.ClearCart(ctx)
	require.Equal(t, 0, st.TotalItems())
}

func TestCartStore_ClearReportsDeleteFailureOnlyInternally(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mocks.NewMockCartStorage(ctrl)
	ctx := context.Background()

	storage.EXPECT().Load(gomock.Any(), cartID).Return(nil, nil)
	storage.EXPECT().Save(gomock.Any(), cartID, gomock.Any()).Return(nil)
	storage.EXPECT().Delete(gomock.Any(), cartID).Return(errors.New("conn reset"))

	st := usecase.NewCartStore(cartID, storage, validate.NewCartValidator(), noopLogger{})
	require.NoError(t, st.Restore(ctx))
	require.True(t, st.AddToCart(ctx, bottle()))

	// ClearCart ничего не возвращает: корзина в памяти пуста
	st.ClearCart(ctx)
	require.Empty(t, st.Items())
}

func TestCartStore_TotalItemsInvariant(t *testing.T) {
	ctx := context.Background()
	st, _ := newStore(t)
	rng := rand.New(rand.NewSource(42))
	catalog := []domain.CartItem{bottle(), cap5(), {ID: "p3", Name: "Mug", Price: 99.9, Stock: 3}}

	for i := 0; i < 500; i++ {
		item := catalog[rng.Intn(len(catalog))]
		switch rng.Intn(4) {
		case 0, 1:
			st.AddToCart(ctx, item)
		case 2:
			st.UpdateQuantity(ctx, item.ID, rng.Intn(8)-2)
		case 3:
			st.RemoveFromCart(ctx, item.ID)
		}

		items := st.Items()
		sum := 0
		seen := map[string]bool{}
		for _, it := range items {
			sum += it.Quantity
			require.False(t, seen[it.ID], "duplicate id %s", it.ID)
			seen[it.ID] = true
			require.GreaterOrEqual(t, it.Quantity, 1)
			require.LessOrEqual(t, it.Quantity, it.Stock)
		}
		require.Equal(t, sum, st.TotalItems())
	}
}

func TestCartStore_SubscribeNotifiesOnChangeOnly(t *testing.T) {
	ctx := context.Background()
	st, _ := newStore(t)

	var events []domain.CartEvent
	unsubscribe := st.Subscribe(func(_ context.Context, ev domain.CartEvent) {
		events = append(events, ev)
	})

	require.True(t, st.AddToCart(ctx, bottle()))
	require.True(t, st.AddToCart(ctx, bottle()))
	require.False(t, st.AddToCart(ctx, bottle())) // без события
	st.UpdateQuantity(ctx, "p1", 2)               // без изменения — без события
	st.UpdateQuantity(ctx, "p1", 1)
	st.RemoveFromCart(ctx, "missing") // без события
	st.ClearCart(ctx)

	ops := make([]domain.CartOp, 0, len(events))
	for _, ev := range events {
		ops = append(ops, ev.Op)
		require.Equal(t, cartID, ev.CartID)
	}
	require.Equal(t, []domain.CartOp{
		domain.CartOpItemAdded,
		domain.CartOpItemAdded,
		domain.CartOpQuantityChanged,
		domain.CartOpCleared,
	}, ops)
	require.Equal(t, 2, events[1].TotalItems)
	require.Equal(t, 1, events[2].TotalItems)
	for i, ev := range events {
		require.Equal(t, uint64(i+1), ev.Version)
	}

	unsubscribe()
	unsubscribe()
	require.True(t, st.AddToCart(ctx, cap5()))
	require.Len(t, events, 4)
}

func TestCartStore_ConcurrentAddsRespectStock(t *testing.T) {
	ctx := context.Background()
	st, _ := newStore(t)
	item := domain.CartItem{ID: "hot", Name: "x", Price: 1, Stock: 10}

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		oks int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if st.AddToCart(ctx, item) {
				mu.Lock()
				oks++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 10, oks)
	require.Equal(t, 10, st.TotalItems())
}
