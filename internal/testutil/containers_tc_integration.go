//go:build integration

package testutil

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/testcontainers/testcontainers-go/wait"

	pgslot "github.com/Gunvolt24/wb_cart/internal/slot/postgres"
)

const startupDeadline = 60 * time.Second

var tcLogger = log.New(os.Stdout, "[tc] ", log.LstdFlags)

// logHooks — строка в лог на создание, готовность и остановку контейнера.
func logHooks(kind string) tc.ContainerLifecycleHooks {
	stage := func(name string) tc.ContainerHook {
		return func(_ context.Context, c tc.Container) error {
			id := c.GetContainerID()
			if len(id) > 12 {
				id = id[:12]
			}
			tcLogger.Printf("%s %s id=%s", kind, name, id)
			return nil
		}
	}
	return tc.ContainerLifecycleHooks{
		PostCreates:    []tc.ContainerHook{stage("created")},
		PostReadies:    []tc.ContainerHook{stage("ready")},
		PostTerminates: []tc.ContainerHook{stage("terminated")},
	}
}

// PGContainer — Postgres со схемой слота корзины и готовым пулом.
type PGContainer struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	DSN       string
}

// StartPostgresTC — Postgres 16, схема накатывается тем же Migrate, что и при старте сервиса.
func StartPostgresTC(ctx context.Context) (*PGContainer, func(context.Context) error, error) {
	pg, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		tc.WithLifecycleHooks(logHooks("postgres")),
		postgres.WithDatabase("cart"),
		postgres.WithUsername("app"),
		postgres.WithPassword("app"),
		tc.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(startupDeadline),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run postgres: %w", err)
	}
	terminate := func(c context.Context) error { return pg.Terminate(c) }

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = terminate(ctx)
		return nil, nil, fmt.Errorf("conn string: %w", err)
	}

	pool, err := pgslot.NewPool(ctx, dsn, 5)
	if err != nil {
		_ = terminate(ctx)
		return nil, nil, fmt.Errorf("pool: %w", err)
	}
	if err := pgslot.Migrate(ctx, pool, stdLogger{}); err != nil {
		pool.Close()
		_ = terminate(ctx)
		return nil, nil, err
	}

	stop := func(c context.Context) error {
		pool.Close()
		return terminate(c)
	}
	return &PGContainer{Container: pg, Pool: pool, DSN: dsn}, stop, nil
}

// RedisContainer — redis:7 для слота корзины.
type RedisContainer struct {
	Container tc.Container
	Addr      string
}

// StartRedisTC — redis без модуля testcontainers: GenericContainer + ожидание лога готовности.
func StartRedisTC(ctx context.Context) (*RedisContainer, func(context.Context) error, error) {
	rc, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:          "redis:7-alpine",
			ExposedPorts:   []string{"6379/tcp"},
			LifecycleHooks: []tc.ContainerLifecycleHooks{logHooks("redis")},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("6379/tcp"),
				wait.ForLog("Ready to accept connections"),
			).WithDeadline(startupDeadline),
		},
		Started: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("run redis: %w", err)
	}

	addr, err := rc.PortEndpoint(ctx, "6379/tcp", "")
	if err != nil {
		_ = tc.TerminateContainer(rc)
		return nil, nil, fmt.Errorf("redis endpoint: %w", err)
	}

	stop := func(_ context.Context) error { return tc.TerminateContainer(rc) }
	return &RedisContainer{Container: rc, Addr: addr}, stop, nil
}

// KafkaEnv — redpanda как Kafka-совместимый брокер для топика команд.
type KafkaEnv struct {
	Container *redpanda.Container
	Brokers   []string
	BaseTopic string
}

// StartKafkaTC — redpanda с автосозданием топиков; Brokers — seed-брокер.
func StartKafkaTC(ctx context.Context, baseTopic string) (*KafkaEnv, func(context.Context) error, error) {
	rp, err := redpanda.Run(
		ctx,
		"docker.redpanda.com/redpandadata/redpanda:v23.3.8",
		tc.WithLifecycleHooks(logHooks("redpanda")),
		redpanda.WithAutoCreateTopics(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run redpanda: %w", err)
	}

	seed, err := rp.KafkaSeedBroker(ctx)
	if err != nil {
		_ = tc.TerminateContainer(rp)
		return nil, nil, fmt.Errorf("seed broker: %w", err)
	}

	stop := func(_ context.Context) error { return tc.TerminateContainer(rp) }
	return &KafkaEnv{Container: rp, Brokers: []string{seed}, BaseTopic: baseTopic}, stop, nil
}

// stdLogger — ports.Logger поверх tcLogger для вспомогательного кода тестов.
type stdLogger struct{}

func (stdLogger) Infof(_ context.Context, f string, a ...any)  { tcLogger.Printf("INFO "+f, a...) }
func (stdLogger) Warnf(_ context.Context, f string, a ...any)  { tcLogger.Printf("WARN "+f, a...) }
func (stdLogger) Errorf(_ context.Context, f string, a ...any) { tcLogger.Printf("ERROR "+f, a...) }
