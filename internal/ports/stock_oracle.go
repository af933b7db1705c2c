package ports

import (
	"context"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

// StockOracle — внешний источник остатков. Один сетевой запрос на вызов;
// таймаут и сетевые ошибки возвращаются как error.
type StockOracle interface {
	GetStock(ctx context.Context, productID int) (domain.Stock, error)
}
