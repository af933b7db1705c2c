package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
)

// ValidateCartFromJSON — валидация корзины из JSON (формат слота).
// Неизвестные поля позиции сохраняются в атрибутах товара; данные после массива запрещены.
func ValidateCartFromJSON(ctx context.Context, validator ports.CartValidator, raw []byte) (domain.Cart, error) {
	var cart domain.Cart
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&cart); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %w", ErrInvalidCart, err)
	}
	// гарантируем отсутствие данных после массива
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("%w: invalid json: trailing data", ErrInvalidCart)
	}
	if cart == nil {
		cart = domain.Cart{}
	}
	if err := validator.Validate(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
