//go:build integration

package testutil

import (
	"github.com/google/uuid"

	"github.com/Gunvolt24/storefront-cart/internal/domain"
)

// NewCartID — идентификатор корзины в формате cookie cart_id.
func NewCartID() string { return uuid.NewString() }

// MakeCart — валидная корзина из n строк (quantity <= stock).
func MakeCart(n int) domain.Cart {
	cart := make(domain.Cart, 0, n)
	for i := 0; i < n; i++ {
		cart = append(cart, domain.CartItem{
			ID:       "prod-" + uuid.NewString()[:8],
			Name:     "Widget",
			Price:    99.5 + float64(i),
			Quantity: 1 + i%3,
			Image:    "/img/widget.jpg",
			Stock:    5,
		})
	}
	return cart
}
