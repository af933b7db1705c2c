package validate

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
)

// Проверка, что CartValidator удовлетворяет интерфейсу CartValidator.
var _ ports.CartValidator = (*CartValidator)(nil)

// ErrInvalidCart — базовая (sentinel error) ошибка валидации корзины.
var ErrInvalidCart = errors.New("cart validation failed")

// CartValidator — проверка инвариантов сериализованной корзины.
type CartValidator struct{}

// NewCartValidator — конструктор CartValidator.
// Возвращает ErrInvalidCart (с обёрнутой причиной) при любой проблеме.
func NewCartValidator() *CartValidator { return &CartValidator{} }

// Validate — уникальность товаров, положительные id и количество.
// Остатки здесь не проверяются: после внешнего изменения склада корзина может их превышать.
func (v *CartValidator) Validate(_ context.Context, cart domain.Cart) error {
	seen := make(map[int]int, len(cart))
	for i := range cart {
		e := &cart[i]
		if e.ID <= 0 {
			return fmt.Errorf("%w: entry[%d]: id должен быть положительным, got %d", ErrInvalidCart, i, e.ID)
		}
		if e.Amount <= 0 {
			return fmt.Errorf("%w: entry[%d] id=%d: amount должен быть положительным, got %d", ErrInvalidCart, i, e.ID, e.Amount)
		}
		if first, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: entry[%d]: id=%d уже есть в entry[%d]", ErrInvalidCart, i, e.ID, first)
		}
		seen[e.ID] = i
		if e.Price < 0 {
			return fmt.Errorf("%w: entry[%d] id=%d: price не может быть отрицательной", ErrInvalidCart, i, e.ID)
		}
	}
	return nil
}
