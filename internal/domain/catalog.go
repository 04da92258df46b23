package domain

// ProductSnapshot — актуальные данные товара из удалённого каталога.
type ProductSnapshot struct {
	ID    string
	Name  string
	Price float64
	Image string
	Stock int
}

// ToCartItem — строка корзины из снимка товара (quantity выставит стор).
func (p *ProductSnapshot) ToCartItem() CartItem {
	return CartItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: 1,
		Image:    p.Image,
		Stock:    p.Stock,
	}
}

// StockAdjustment — результат сверки одной строки с живым остатком.
type StockAdjustment struct {
	ID                string `json:"id"`
	AvailableStock    int    `json:"available_stock"`
	RequestedQuantity int    `json:"requested_quantity"`
	NeedsAdjustment   bool   `json:"needs_adjustment"`
}

// StockCheck — результат проверки корзины перед переходом к оформлению.
type StockCheck struct {
	CanProceed  bool              `json:"can_proceed"`
	Adjusted    bool              `json:"adjusted"`
	Adjustments []StockAdjustment `json:"adjustments"`
	Cart        CartSummary       `json:"cart"`
}

// CheckoutEvent — событие «заказ оформлен» от сервиса заказов.
type CheckoutEvent struct {
	CartID  string `json:"cart_id" validate:"required,uuid"`
	OrderID string `json:"order_id" validate:"required"`
}
