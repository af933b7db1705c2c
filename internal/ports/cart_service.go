package ports

import (
	"context"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

// CartService — операции корзины для транспортных слоёв (HTTP, Kafka).
type CartService interface {
	Cart(ctx context.Context) domain.Cart
	AddProduct(ctx context.Context, productID int) error
	RemoveProduct(ctx context.Context, productID int) error
	UpdateProductAmount(ctx context.Context, productID, amount int) error
}
