package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Gunvolt24/storefront-cart/internal/domain"
	"github.com/Gunvolt24/storefront-cart/internal/ports"
	"github.com/Gunvolt24/storefront-cart/pkg/metrics"
	"github.com/Gunvolt24/storefront-cart/pkg/validate"
	"github.com/shopspring/decimal"
)

// CartListener — подписчик на изменения корзины.
// Вызывается после снятия блокировки, получает копию строк.
type CartListener func(ctx context.Context, event domain.CartEvent)

type subscription struct {
	id uint64
	fn CartListener
}

// CartStore — состояние одной корзины в памяти, зеркалируемое в сохранённый слот.
//
// Инварианты: id строк уникальны, 1 <= quantity <= stock.
// Каждая мутация синхронно перезаписывает слот; ошибки записи только логируются.
type CartStore struct {
	cartID    string
	storage   ports.CartStorage
	validator ports.CartValidator
	log       ports.Logger
	now       func() time.Time

	mu          sync.Mutex
	items       domain.Cart
	subscribers []subscription
	nextSubID   uint64
	version     uint64
}

// NewCartStore — пустая корзина; содержимое слота подтягивает Restore.
func NewCartStore(cartID string, storage ports.CartStorage, validator ports.CartValidator, log ports.Logger) *CartStore {
	return &CartStore{
		cartID:    cartID,
		storage:   storage,
		validator: validator,
		log:       log,
		now:       time.Now,
		items:     domain.Cart{},
	}
}

func (s *CartStore) CartID() string { return s.cartID }

// Restore — загрузка слота. Отсутствующий слот — пустая корзина.
// Битый слот (не JSON, чужие поля, нарушены инварианты) удаляется, корзина остаётся пустой.
// Ошибка возвращается только если недоступно само хранилище.
func (s *CartStore) Restore(ctx context.Context) error {
	raw, err := s.storage.Load(ctx, s.cartID)
	if err != nil {
		metrics.CartRestores.WithLabelValues("error").Inc()
		s.log.Errorf(ctx, "cart slot load failed cart_id=%s err=%v", s.cartID, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if raw == nil {
		s.items = domain.Cart{}
		metrics.CartRestores.WithLabelValues("empty").Inc()
		return nil
	}

	cart, err := validate.ValidateCartFromJSON(ctx, s.validator, raw)
	if err != nil {
		s.log.Warnf(ctx, "corrupt cart slot discarded cart_id=%s err=%v", s.cartID, err)
		metrics.CartRestores.WithLabelValues("corrupt").Inc()
		s.items = domain.Cart{}
		if delErr := s.storage.Delete(ctx, s.cartID); delErr != nil {
			metrics.CartPersistFailures.WithLabelValues("delete").Inc()
			s.log.Errorf(ctx, "corrupt cart slot delete failed cart_id=%s err=%v", s.cartID, delErr)
		}
		return nil
	}

	s.items = cart
	metrics.CartRestores.WithLabelValues("restored").Inc()
	return nil
}

// AddToCart — +1 к существующей строке или новая строка с quantity=1.
// false, если упёрлись в stock существующей строки (или новая строка невалидна).
func (s *CartStore) AddToCart(ctx context.Context, item domain.CartItem) bool {
	s.mu.Lock()

	if idx := s.items.IndexOf(item.ID); idx >= 0 {
		// потолок — stock, записанный в корзине, а не присланный сейчас
		if s.items[idx].Quantity >= s.items[idx].Stock {
			s.mu.Unlock()
			metrics.CartOps.WithLabelValues("add", "rejected").Inc()
			s.log.Infof(ctx, "add rejected by stock ceiling product_id=%s stock=%d", item.ID, s.items[idx].Stock)
			return false
		}
		s.items[idx].Quantity++
	} else {
		item.Quantity = 1
		if err := s.validator.Validate(ctx, domain.Cart{item}); err != nil {
			s.mu.Unlock()
			metrics.CartOps.WithLabelValues("add", "rejected").Inc()
			s.log.Infof(ctx, "add rejected product_id=%s err=%v", item.ID, err)
			return false
		}
		s.items = append(s.items, item)
	}

	event := s.commitLocked(ctx, domain.CartOpItemAdded, item.ID)
	s.mu.Unlock()

	metrics.CartOps.WithLabelValues("add", "changed").Inc()
	s.notify(ctx, event)
	return true
}

// RemoveFromCart — удаляет строку; отсутствующий id — no-op.
func (s *CartStore) RemoveFromCart(ctx context.Context, id string) {
	s.mu.Lock()
	if !s.removeLocked(id) {
		s.mu.Unlock()
		metrics.CartOps.WithLabelValues("remove", "noop").Inc()
		return
	}
	event := s.commitLocked(ctx, domain.CartOpItemRemoved, id)
	s.mu.Unlock()

	metrics.CartOps.WithLabelValues("remove", "changed").Inc()
	s.notify(ctx, event)
}

// UpdateQuantity — quantity = min(q, stock); q <= 0 удаляет строку.
func (s *CartStore) UpdateQuantity(ctx context.Context, id string, quantity int) {
	s.mu.Lock()

	idx := s.items.IndexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		metrics.CartOps.WithLabelValues("update", "noop").Inc()
		return
	}

	op := domain.CartOpQuantityChanged
	if quantity <= 0 {
		s.removeLocked(id)
		op = domain.CartOpItemRemoved
	} else {
		next := min(quantity, s.items[idx].Stock)
		if next == s.items[idx].Quantity {
			s.mu.Unlock()
			metrics.CartOps.WithLabelValues("update", "noop").Inc()
			return
		}
		s.items[idx].Quantity = next
	}

	event := s.commitLocked(ctx, op, id)
	s.mu.Unlock()

	metrics.CartOps.WithLabelValues("update", "changed").Inc()
	s.notify(ctx, event)
}

// ClearCart — очищает корзину и удаляет слот целиком.
func (s *CartStore) ClearCart(ctx context.Context) {
	_ = s.clear(ctx)
}

// clear — ClearCart, но ошибка удаления слота возвращается вызывающему.
func (s *CartStore) clear(ctx context.Context) error {
	s.mu.Lock()
	hadItems := len(s.items) > 0
	s.items = domain.Cart{}
	delErr := s.storage.Delete(ctx, s.cartID)
	if delErr != nil {
		metrics.CartPersistFailures.WithLabelValues("delete").Inc()
		s.log.Errorf(ctx, "cart slot delete failed cart_id=%s err=%v", s.cartID, delErr)
	}
	if !hadItems {
		s.mu.Unlock()
		metrics.CartOps.WithLabelValues("clear", "noop").Inc()
		return delErr
	}
	event := s.eventLocked(domain.CartOpCleared, "")
	s.mu.Unlock()

	metrics.CartOps.WithLabelValues("clear", "changed").Inc()
	s.notify(ctx, event)
	return delErr
}

// Items — копия строк в порядке добавления.
func (s *CartStore) Items() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Clone()
}

// TotalItems — сумма quantity; без побочных эффектов.
func (s *CartStore) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.TotalItems()
}

func (s *CartStore) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Subtotal()
}

func (s *CartStore) Summary() domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Summarize(s.cartID, s.items)
}

// Subscribe — регистрирует подписчика; возвращает функцию отписки.
func (s *CartStore) Subscribe(fn CartListener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i := range s.subscribers {
				if s.subscribers[i].id == id {
					s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
					return
				}
			}
		})
	}
}

// ------вспомогательные функции------

func (s *CartStore) removeLocked(id string) bool {
	idx := s.items.IndexOf(id)
	if idx < 0 {
		return false
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	return true
}

// commitLocked — запись слота после мутации и событие для подписчиков.
// Пустая корзина сохраняется как [], удаление ключа — только в ClearCart.
func (s *CartStore) commitLocked(ctx context.Context, op domain.CartOp, productID string) domain.CartEvent {
	payload, err := json.Marshal(s.items)
	if err != nil {
		metrics.CartPersistFailures.WithLabelValues("save").Inc()
		s.log.Errorf(ctx, "cart marshal failed cart_id=%s err=%v", s.cartID, err)
		return s.eventLocked(op, productID)
	}
	if err := s.storage.Save(ctx, s.cartID, payload); err != nil {
		metrics.CartPersistFailures.WithLabelValues("save").Inc()
		s.log.Errorf(ctx, "cart slot save failed cart_id=%s err=%v", s.cartID, err)
	}
	return s.eventLocked(op, productID)
}

func (s *CartStore) eventLocked(op domain.CartOp, productID string) domain.CartEvent {
	s.version++
	items := s.items.Clone()
	return domain.CartEvent{
		CartID:     s.cartID,
		Version:    s.version,
		Op:         op,
		ProductID:  productID,
		Items:      items,
		TotalItems: items.TotalItems(),
		OccurredAt: s.now().UTC(),
	}
}

func (s *CartStore) notify(ctx context.Context, event domain.CartEvent) {
	s.mu.Lock()
	subs := make([]subscription, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(ctx, event)
	}
}
