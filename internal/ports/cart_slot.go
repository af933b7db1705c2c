package ports

import "context"

// CartSlot — именованный долговременный слот с сериализованной корзиной.
// Значение всегда перезаписывается целиком.
type CartSlot interface {
	// Get — (value, true, nil) если слот заполнен, (nil, false, nil) если пуст.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set — записать значение слота целиком.
	Set(ctx context.Context, key string, value []byte) error
}
