package app_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/wb_cart/config"
	"github.com/Gunvolt24/wb_cart/internal/app"
	"github.com/Gunvolt24/wb_cart/internal/kafka"
	"github.com/Gunvolt24/wb_cart/internal/testutil"
)

// логгер-заглушка
type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// фейковый консьюмер, который ждёт отмены контекста
type fakeConsumer struct {
	runCalls   int32
	closeCalls int32
	runErr     error
}

func (f *fakeConsumer) Run(ctx context.Context) error {
	atomic.AddInt32(&f.runCalls, 1)
	if f.runErr != nil {
		return f.runErr
	}
	<-ctx.Done()
	return ctx.Err()
}
func (f *fakeConsumer) Close() error {
	atomic.AddInt32(&f.closeCalls, 1)
	return nil
}

func testConfig(t *testing.T, inventoryURL string) *config.Config {
	t.Helper()
	cfg, err := config.LoadWithPrefix("CART_TEST_BOOTSTRAP")
	require.NoError(t, err)

	cfg.HTTP.Addr = "127.0.0.1:0"
	cfg.HTTP.GinMode = "test"
	cfg.Inventory.BaseURL = inventoryURL
	cfg.Cart.SlotBackend = "memory"
	cfg.Kafka.Enabled = false
	return &cfg
}

func TestAppRun_GracefulShutdown(t *testing.T) {
	// HTTP-сервер на случайном свободном порту
	srv := &http.Server{
		Addr:    "127.0.0.1:0",
		Handler: http.NewServeMux(),
	}

	fc := &fakeConsumer{}
	a := &app.App{
		Logger:        nopLogger{},
		HTTPServer:    srv,
		KafkaConsumer: fc,
	}

	// Запуск и быстрая остановка
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if atomic.LoadInt32(&fc.runCalls) == 0 {
		t.Fatalf("consumer.Run should be called")
	}
	if atomic.LoadInt32(&fc.closeCalls) == 0 {
		t.Fatalf("consumer.Close should be called")
	}
}

func TestAppRun_WithoutConsumer(t *testing.T) {
	a := &app.App{
		Logger:     nopLogger{},
		HTTPServer: &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	require.NoError(t, a.Run(ctx))
}

func TestAppRun_ConsumerFailure_StopsApp(t *testing.T) {
	boom := errors.New("kafka unavailable")
	fc := &fakeConsumer{runErr: boom}
	a := &app.App{
		Logger:        nopLogger{},
		HTTPServer:    &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()},
		KafkaConsumer: fc,
	}

	err := a.Run(context.Background())
	require.ErrorIs(t, err, boom)
	require.EqualValues(t, 1, atomic.LoadInt32(&fc.closeCalls))
}

func TestBootstrap_MemorySlot_ServesCart(t *testing.T) {
	inv := testutil.NewInventoryServer(t, map[int]int{1: 3})
	cfg := testConfig(t, inv.URL)

	a, cleanup, err := app.Bootstrap(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()

	require.Nil(t, a.KafkaConsumer, "kafka disabled by default")
	require.Empty(t, a.Cart.Cart(context.Background()))

	h := a.HTTPServer.Handler

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cart/items/1", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"amount":1`)

	require.Equal(t, 1, a.Cart.Cart(context.Background()).AmountOf(1))
}

func TestBootstrap_KafkaEnabled_CreatesConsumer(t *testing.T) {
	inv := testutil.NewInventoryServer(t, map[int]int{})
	cfg := testConfig(t, inv.URL)
	cfg.Kafka.Enabled = true

	a, cleanup, err := app.Bootstrap(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()

	require.NotNil(t, a.KafkaConsumer)
}

func TestBootstrap_KafkaEnabled_EmptyTopic(t *testing.T) {
	inv := testutil.NewInventoryServer(t, map[int]int{})
	cfg := testConfig(t, inv.URL)
	cfg.Kafka.Enabled = true
	cfg.Kafka.Topic = " "

	_, cleanup, err := app.Bootstrap(context.Background(), cfg)
	require.ErrorIs(t, err, kafka.ErrInvalidConfig)
	cleanup()
}

func TestBootstrap_UnknownSlotBackend(t *testing.T) {
	cfg := testConfig(t, "http://localhost:3333")
	cfg.Cart.SlotBackend = "etcd"

	_, cleanup, err := app.Bootstrap(context.Background(), cfg)
	require.Error(t, err)
	cleanup()
}

func TestBootstrap_InvalidInventoryURL(t *testing.T) {
	cfg := testConfig(t, "::not-a-url")

	_, cleanup, err := app.Bootstrap(context.Background(), cfg)
	require.Error(t, err)
	cleanup()
}
