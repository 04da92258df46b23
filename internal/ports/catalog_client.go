package ports

import (
	"context"

	"github.com/Gunvolt24/storefront-cart/internal/domain"
)

// CatalogClient — чтение удалённого каталога товаров.
type CatalogClient interface {
	// Product — снимок товара; (nil, nil), если товара нет.
	Product(ctx context.Context, productID string) (*domain.ProductSnapshot, error)
}
