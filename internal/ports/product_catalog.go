package ports

import (
	"context"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

// ProductCatalog — каталог товаров (название, цена, картинка).
type ProductCatalog interface {
	GetProduct(ctx context.Context, productID int) (domain.Product, error)
}
