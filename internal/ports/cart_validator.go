package ports

import (
	"context"

	"github.com/Gunvolt24/storefront-cart/internal/domain"
)

type CartValidator interface {
	Validate(ctx context.Context, cart domain.Cart) error
}
