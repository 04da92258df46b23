package ports

import (
	"context"

	"github.com/Gunvolt24/storefront-cart/internal/domain"
)

// CartEventPublisher — отправка событий корзины наружу (fire-and-forget).
type CartEventPublisher interface {
	Publish(ctx context.Context, event domain.CartEvent)
	Close() error
}
