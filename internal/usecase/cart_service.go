package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/storefront-cart/internal/cache/memory"
	"github.com/Gunvolt24/storefront-cart/internal/domain"
	"github.com/Gunvolt24/storefront-cart/internal/ports"
	"github.com/Gunvolt24/storefront-cart/pkg/validate"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

var _ ports.CartService = (*CartService)(nil)

var (
	// ErrCatalogUnavailable — каталог не ответил (после ретраев клиента).
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrProductNotFound — товара нет в каталоге.
	ErrProductNotFound = errors.New("product not found")
)

// CartServiceOptions — параметры кэша «живых» корзин и сверки остатков.
type CartServiceOptions struct {
	StoreCacheCapacity int
	StoreCacheTTL      time.Duration
	// CatalogConcurrency — предел параллельных запросов в каталог при сверке.
	CatalogConcurrency int
}

// CartService — корзины по идентификатору сессии (без знаний о транспорте).
type CartService struct {
	storage   ports.CartStorage
	validator ports.CartValidator
	catalog   ports.CatalogClient
	log       ports.Logger

	stores    *memory.LRUCacheTTL[*CartStore]
	restores  singleflight.Group
	listeners []CartListener

	concurrency int
}

// NewCartService — DI-конструктор. listeners подписываются на каждую открытую корзину.
func NewCartService(
	storage ports.CartStorage,
	validator ports.CartValidator,
	catalog ports.CatalogClient,
	log ports.Logger,
	opts CartServiceOptions,
	listeners ...CartListener,
) *CartService {
	if opts.CatalogConcurrency <= 0 {
		opts.CatalogConcurrency = 8
	}
	return &CartService{
		storage:   storage,
		validator: validator,
		catalog:   catalog,
		log:       log,
		stores: memory.NewLRUCacheTTL(memory.Options[*CartStore]{
			Name:     "cart_stores",
			Capacity: opts.StoreCacheCapacity,
			TTL:      opts.StoreCacheTTL,
			Sliding:  true,
		}),
		listeners:   listeners,
		concurrency: opts.CatalogConcurrency,
	}
}

func (s *CartService) Cart(ctx context.Context, cartID string) (domain.CartSummary, error) {
	st, err := s.store(ctx, cartID)
	if err != nil {
		return domain.CartSummary{}, err
	}
	return st.Summary(), nil
}

func (s *CartService) TotalItems(ctx context.Context, cartID string) (int, error) {
	st, err := s.store(ctx, cartID)
	if err != nil {
		return 0, err
	}
	return st.TotalItems(), nil
}

func (s *CartService) AddItem(ctx context.Context, cartID string, item domain.CartItem) (domain.CartSummary, bool, error) {
	st, err := s.store(ctx, cartID)
	if err != nil {
		return domain.CartSummary{}, false, err
	}
	added := st.AddToCart(ctx, item)
	return st.Summary(), added, nil
}

// AddProduct — добавление по id: имя, цена, картинка и остаток берутся из каталога.
func (s *CartService) AddProduct(ctx context.Context, cartID, productID string) (domain.CartSummary, bool, error) {
	st, err := s.store(ctx, cartID)
	if err != nil {
		return domain.CartSummary{}, false, err
	}

	product, err := s.catalog.Product(ctx, productID)
	if err != nil {
		s.log.Warnf(ctx, "catalog lookup failed product_id=%s err=%v", productID, err)
		return domain.CartSummary{}, false, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	if product == nil {
		return domain.CartSummary{}, false, ErrProductNotFound
	}

	added := st.AddToCart(ctx, product.ToCartItem())
	return st.Summary(), added, nil
}

func (s *CartService) RemoveItem(ctx context.Context, cartID, productID string) (domain.CartSummary, error) {
	st, err := s.store(ctx, cartID)
	if err != nil {
		return domain.CartSummary{}, err
	}
	st.RemoveFromCart(ctx, productID)
	return st.Summary(), nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (domain.CartSummary, error) {
	st, err := s.store(ctx, cartID)
	if err != nil {
		return domain.CartSummary{}, err
	}
	st.UpdateQuantity(ctx, productID, quantity)
	return st.Summary(), nil
}

func (s *CartService) Clear(ctx context.Context, cartID string) error {
	st, err := s.store(ctx, cartID)
	if err != nil {
		return err
	}
	st.ClearCart(ctx)
	return nil
}

// VerifyStock — сверка корзины с живыми остатками перед оформлением.
// Любая неудачная выборка из каталога проваливает всю проверку.
// Строки сверх остатка урезаются (остаток 0 — строка удаляется).
func (s *CartService) VerifyStock(ctx context.Context, cartID string) (domain.StockCheck, error) {
	st, err := s.store(ctx, cartID)
	if err != nil {
		return domain.StockCheck{}, err
	}

	items := st.Items()
	if len(items) == 0 {
		return domain.StockCheck{Adjustments: []domain.StockAdjustment{}, Cart: st.Summary()}, nil
	}

	available := make([]int, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range items {
		i := i
		g.Go(func() error {
			product, err := s.catalog.Product(gctx, items[i].ID)
			if err != nil {
				return fmt.Errorf("product %s: %w", items[i].ID, err)
			}
			// снятый с продажи товар — нулевой остаток
			if product != nil && product.Stock > 0 {
				available[i] = product.Stock
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Warnf(ctx, "stock verification failed cart_id=%s err=%v", cartID, err)
		return domain.StockCheck{}, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	check := domain.StockCheck{Adjustments: make([]domain.StockAdjustment, 0, len(items))}
	for i := range items {
		adj := domain.StockAdjustment{
			ID:                items[i].ID,
			AvailableStock:    available[i],
			RequestedQuantity: items[i].Quantity,
			NeedsAdjustment:   items[i].Quantity > available[i],
		}
		if adj.NeedsAdjustment {
			st.UpdateQuantity(ctx, adj.ID, adj.AvailableStock)
			check.Adjusted = true
		}
		if adj.AvailableStock > 0 {
			check.CanProceed = true
		}
		check.Adjustments = append(check.Adjustments, adj)
	}
	check.Cart = st.Summary()

	if check.Adjusted {
		s.log.Infof(ctx, "cart adjusted to live stock cart_id=%s can_proceed=%t", cartID, check.CanProceed)
	}
	return check, nil
}

// HandleCheckoutEvent — заказ оформлен: корзина сессии очищается.
// Невалидное событие — validate.ErrInvalidEvent (консьюмер его пропустит).
func (s *CartService) HandleCheckoutEvent(ctx context.Context, raw []byte) error {
	ev, err := validate.DecodeCheckoutEvent(ctx, raw)
	if err != nil {
		s.log.Warnf(ctx, "invalid checkout event err=%v", err)
		return err
	}

	st, err := s.store(ctx, ev.CartID)
	if err == nil {
		err = st.clear(ctx)
	}
	if err != nil {
		s.log.Errorf(ctx, "clear after checkout failed cart_id=%s order_id=%s err=%v", ev.CartID, ev.OrderID, err)
		return fmt.Errorf("clear cart: %w", err)
	}

	s.log.Infof(ctx, "cart cleared after checkout cart_id=%s order_id=%s", ev.CartID, ev.OrderID)
	return nil
}

// store — живая корзина из кэша; при промахе — восстановление из слота.
// Параллельные первые обращения к одной корзине делят одно восстановление.
func (s *CartService) store(ctx context.Context, cartID string) (*CartStore, error) {
	if st, ok := s.stores.Get(cartID); ok {
		return st, nil
	}

	v, err, _ := s.restores.Do(cartID, func() (any, error) {
		if st, ok := s.stores.Get(cartID); ok {
			return st, nil
		}
		st := NewCartStore(cartID, s.storage, s.validator, s.log)
		if err := st.Restore(ctx); err != nil {
			return nil, fmt.Errorf("restore cart: %w", err)
		}
		for _, l := range s.listeners {
			st.Subscribe(l)
		}
		s.stores.Set(cartID, st)
		return st, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*CartStore), nil
}
