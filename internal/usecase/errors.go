package usecase

import "errors"

var (
	// ErrStockExceeded — запрошенное количество больше остатка.
	ErrStockExceeded = errors.New("requested quantity out of stock")
	// ErrNotFound — позиции с таким товаром нет в корзине.
	ErrNotFound = errors.New("product not in cart")

	ErrAddFailed     = errors.New("add product failed")
	ErrRemoveFailed  = errors.New("remove product failed")
	ErrUpdateFailed  = errors.New("update product amount failed")
	ErrPersistFailed = errors.New("persist cart failed")
)

// UserMessage — текст уведомления для пользователя по ошибке операции корзины.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrStockExceeded):
		return "Requested quantity out of stock"
	case errors.Is(err, ErrRemoveFailed):
		return "Error removing product"
	case errors.Is(err, ErrAddFailed):
		return "Error adding product"
	case errors.Is(err, ErrUpdateFailed):
		return "Error changing product quantity"
	default:
		return "Unexpected error"
	}
}
