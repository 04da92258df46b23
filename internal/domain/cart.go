package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxStock — верхняя граница stock строки; держит суммы quantity далеко от переполнения int.
const MaxStock = 1_000_000

// CartItem — строка корзины: снимок товара каталога на момент добавления.
// Stock — локальный потолок количества, с каталогом не сверяется при каждой мутации.
type CartItem struct {
	ID       string  `json:"id" validate:"required"`
	Name     string  `json:"name"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=1,ltefield=Stock"`
	Image    string  `json:"image"`
	Stock    int     `json:"stock" validate:"gte=0,lte=1000000"`
}

// Cart — упорядоченный набор строк (порядок первого добавления), id уникальны.
type Cart []CartItem

// IndexOf — позиция строки с данным id или -1.
func (c Cart) IndexOf(id string) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// TotalItems — сумма quantity по всем строкам (бейдж в шапке).
func (c Cart) TotalItems() int {
	total := 0
	for i := range c {
		total += c[i].Quantity
	}
	return total
}

// Subtotal — сумма price*quantity без ошибок округления float.
func (c Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for i := range c {
		line := decimal.NewFromFloat(c[i].Price).Mul(decimal.NewFromInt(int64(c[i].Quantity)))
		sum = sum.Add(line)
	}
	return sum
}

// Clone — копия, не разделяющая backing array с оригиналом.
// Пустая корзина всегда non-nil, чтобы в JSON уходило [] а не null.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// CartSummary — то, что видят витрина и страница корзины.
type CartSummary struct {
	CartID     string     `json:"cart_id"`
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items"`
	Subtotal   string     `json:"subtotal"`
}

// Summarize — сводка по корзине; subtotal с двумя знаками, как на странице корзины.
func Summarize(cartID string, c Cart) CartSummary {
	items := c.Clone()
	return CartSummary{
		CartID:     cartID,
		Items:      items,
		TotalItems: items.TotalItems(),
		Subtotal:   items.Subtotal().StringFixed(2),
	}
}

// CartOp — тип изменения корзины.
type CartOp string

const (
	CartOpItemAdded       CartOp = "item_added"
	CartOpQuantityChanged CartOp = "quantity_changed"
	CartOpItemRemoved     CartOp = "item_removed"
	CartOpCleared         CartOp = "cleared"
)

// CartEvent — уведомление подписчиков об изменении корзины.
// Version монотонно растёт для одной живой корзины; по нему потребитель упорядочивает события.
type CartEvent struct {
	CartID     string     `json:"cart_id"`
	Version    uint64     `json:"version"`
	Op         CartOp     `json:"op"`
	ProductID  string     `json:"product_id,omitempty"`
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items"`
	OccurredAt time.Time  `json:"occurred_at"`
}
