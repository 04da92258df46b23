package ports

import (
	"context"

	"github.com/Gunvolt24/storefront-cart/internal/domain"
)

// CartService — операции над корзиной сессии для транспортного слоя.
type CartService interface {
	Cart(ctx context.Context, cartID string) (domain.CartSummary, error)
	TotalItems(ctx context.Context, cartID string) (int, error)

	// AddItem — (сводка, true) при изменении; (сводка, false), если упёрлись в остаток.
	AddItem(ctx context.Context, cartID string, item domain.CartItem) (domain.CartSummary, bool, error)
	AddProduct(ctx context.Context, cartID, productID string) (domain.CartSummary, bool, error)

	RemoveItem(ctx context.Context, cartID, productID string) (domain.CartSummary, error)
	UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (domain.CartSummary, error)
	Clear(ctx context.Context, cartID string) error

	VerifyStock(ctx context.Context, cartID string) (domain.StockCheck, error)
}
