package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что CartSlot удовлетворяет интерфейсу CartSlot.
var _ ports.CartSlot = (*CartSlot)(nil)

// CartSlot — слот корзины в Postgres: одна строка cart_slots на ключ.
type CartSlot struct {
	pool *pgxpool.Pool
}

// NewCartSlot - конструктор CartSlot.
func NewCartSlot(pool *pgxpool.Pool) *CartSlot { return &CartSlot{pool: pool} }

// Get — значение слота; (nil, false, nil), если строки нет.
func (s *CartSlot) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.pool.QueryRow(ctx, `SELECT value::text FROM cart_slots WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select cart slot: %w", err)
	}
	return value, true, nil
}

// Set — upsert значения слота целиком.
func (s *CartSlot) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return errors.New("slot key is required")
	}
	if _, err := s.pool.Exec(ctx, `
		INSERT INTO cart_slots (key, value, updated_at) VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, key, string(value)); err != nil {
		return fmt.Errorf("upsert cart slot: %w", err)
	}
	return nil
}
