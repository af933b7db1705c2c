package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/wb_cart/internal/ports"
	goredis "github.com/redis/go-redis/v9"
)

// Проверка, что CartSlot удовлетворяет интерфейсу CartSlot.
var _ ports.CartSlot = (*CartSlot)(nil)

// CartSlot — слот корзины в Redis (строковый ключ, без TTL).
type CartSlot struct {
	rdb goredis.Cmdable
}

// NewCartSlot — слот поверх готового клиента (Client, Ring или ClusterClient).
func NewCartSlot(rdb goredis.Cmdable) *CartSlot { return &CartSlot{rdb: rdb} }

// NewClient — клиент Redis с проверкой соединения (fail-fast).
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// Get — значение ключа; отсутствующий ключ (redis.Nil) → ok=false без ошибки.
func (s *CartSlot) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

// Set — полная перезапись значения ключа.
func (s *CartSlot) Set(ctx context.Context, key string, value []byte) error {
	if err := s.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
