package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gunvolt24/wb_cart/config"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/internal/slot/memory"
	"github.com/Gunvolt24/wb_cart/internal/slot/postgres"
	"github.com/Gunvolt24/wb_cart/internal/slot/redis"
)

// openSlot — долговременный слот корзины по CART_CART_SLOT_BACKEND.
// Для postgres схема накатывается при старте, если не выключено CART_POSTGRES_AUTO_MIGRATE.
func openSlot(ctx context.Context, cfg *config.Config, log ports.Logger) (ports.CartSlot, func(), error) {
	switch backend := strings.ToLower(strings.TrimSpace(cfg.Cart.SlotBackend)); backend {
	case "", "memory":
		log.Warnf(ctx, "cart slot backend=memory: cart is lost on restart")
		return memory.NewSlot(), func() {}, nil

	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres slot: %w", err)
		}
		if cfg.Postgres.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, log); err != nil {
				pool.Close()
				return nil, nil, fmt.Errorf("postgres slot: %w", err)
			}
		}
		log.Infof(ctx, "cart slot backend=postgres")
		return postgres.NewCartSlot(pool), pool.Close, nil

	case "redis":
		rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("redis slot: %w", err)
		}
		log.Infof(ctx, "cart slot backend=redis addr=%s db=%d", cfg.Redis.Addr, cfg.Redis.DB)
		return redis.NewCartSlot(rdb), func() {
			if cErr := rdb.Close(); cErr != nil {
				log.Warnf(ctx, "redis close: %v", cErr)
			}
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown cart slot backend %q", backend)
	}
}
