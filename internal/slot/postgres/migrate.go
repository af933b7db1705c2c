package postgres

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate — накатывает вшитые миграции (goose) поверх пула. Повторный вызов ничего не меняет.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log ports.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	for _, r := range results {
		log.Infof(ctx, "migration applied version=%d file=%s duration=%s", r.Source.Version, r.Source.Path, r.Duration)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("goose version: %w", err)
	}
	log.Infof(ctx, "cart slot schema version=%d", version)
	return nil
}
