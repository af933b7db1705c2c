package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/wb_cart/config"
	cachemem "github.com/Gunvolt24/wb_cart/internal/cache/memory"
	"github.com/Gunvolt24/wb_cart/internal/client/inventory"
	"github.com/Gunvolt24/wb_cart/internal/kafka"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	rest "github.com/Gunvolt24/wb_cart/internal/transport/http"
	"github.com/Gunvolt24/wb_cart/internal/usecase"
	"github.com/Gunvolt24/wb_cart/pkg/logger"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
	"github.com/Gunvolt24/wb_cart/pkg/telemetry"
	"github.com/Gunvolt24/wb_cart/pkg/validate"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// App — собранное приложение и его внешние интерфейсы (HTTP, consumer).
type App struct {
	Logger          ports.Logger          // логгер
	HTTPServer      *http.Server          // HTTP-сервер
	KafkaConsumer   ports.CommandConsumer // консьюмер команд; nil — Kafka выключена
	Cart            *usecase.CartStore    // корзина (единственный владелец состояния)
	gracefulTimeout time.Duration         // время ожидания завершения HTTP-сервера
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// closers — стек освобождения ресурсов; закрывается в обратном порядке.
type closers []func()

func (c *closers) push(fn func()) { *c = append(*c, fn) }

func (c closers) closeAll() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
// При ошибке уже открытые ресурсы закрываются здесь же.
func Bootstrap(ctx context.Context, cfg *config.Config) (_ *App, _ Cleanup, err error) {
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	var stack closers
	stack.push(func() {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
	})
	defer func() {
		if err != nil {
			stack.closeAll()
		}
	}()

	metrics.MustRegister()

	slot, closeSlot, err := openSlot(ctx, cfg, logg)
	if err != nil {
		return nil, func() {}, err
	}
	stack.push(closeSlot)

	stack.push(setupTracing(ctx, cfg, logg))

	client, err := inventory.NewClient(inventory.Config{
		BaseURL:            cfg.Inventory.BaseURL,
		Timeout:            cfg.Inventory.Timeout,
		BreakerMaxRequests: cfg.Inventory.BreakerMaxRequests,
		BreakerInterval:    cfg.Inventory.BreakerInterval,
		BreakerTimeout:     cfg.Inventory.BreakerTimeout,
	}, logg)
	if err != nil {
		return nil, func() {}, err
	}

	// Остатки всегда запрашиваются напрямую, кэшируется только каталог.
	catalog := cachemem.NewCachedCatalog(client, cachemem.NewProductCache(cfg.Cache.Capacity, cfg.Cache.TTL))

	store := usecase.NewCartStore(client, catalog, slot, validate.NewCartValidator(), logg, usecase.CartStoreOptions{
		SlotKey:       cfg.Cart.SlotKey,
		LookupTimeout: cfg.Cart.LookupTimeout,
		StrictUpdate:  cfg.Cart.StrictUpdate,
	})
	store.Load(ctx)

	app := &App{
		Logger:          logg,
		HTTPServer:      newHTTPServer(ctx, cfg, store, logg),
		Cart:            store,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	if cfg.Kafka.Enabled {
		consumer, cErr := kafka.NewConsumer(&kafka.ConsumerConfig{
			Brokers:        cfg.Kafka.Brokers,
			GroupID:        cfg.Kafka.GroupID,
			Topic:          cfg.Kafka.Topic,
			StartOffset:    cfg.Kafka.StartOffset,
			ProcessTimeout: cfg.Kafka.ProcessTimeout,
			RetryInitial:   cfg.Kafka.RetryInitial,
			RetryMax:       cfg.Kafka.RetryMax,
			MaxAttempts:    cfg.Kafka.MaxAttempts,
		}, store, logg)
		if cErr != nil {
			return nil, func() {}, cErr
		}
		app.KafkaConsumer = consumer
		stack.push(func() {
			if cErr := consumer.Close(); cErr != nil {
				logg.Warnf(ctx, "kafka consumer close error: %v", cErr)
			}
		})
	}

	return app, stack.closeAll, nil
}

// setupTracing — поднимает OTEL; ошибка настройки не фатальна, сервис работает без экспорта.
func setupTracing(ctx context.Context, cfg *config.Config, log ports.Logger) func() {
	shutdown, err := telemetry.SetupTracing(ctx, telemetry.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: cfg.Tracing.ServiceVersion,
		Environment:    cfg.Tracing.Environment,
		Endpoint:       cfg.Tracing.Endpoint,
		SampleRatio:    cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Warnf(ctx, "failed to setup tracing: %v", err)
		return func() {}
	}
	if cfg.Tracing.Enabled {
		log.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
			cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
	}
	return func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warnf(ctx, "shutdown tracing: %v", err)
		}
	}
}

func newHTTPServer(ctx context.Context, cfg *config.Config, store *usecase.CartStore, log ports.Logger) *http.Server {
	applyGinMode(ctx, cfg.HTTP.GinMode, log)

	// otelgin включается только вместе с трейсингом.
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	handler := rest.NewHandler(store, log, cfg.HTTP.HandlerTimeout)
	return &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           rest.NewRouter(handler, cfg.HTTP.StaticDir, otelServiceName),
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}
}

// Run — запускает HTTP-сервер и консьюмера в одной errgroup.
// Отмена ctx или ошибка любого компонента останавливает оба; штатная остановка возвращает nil.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if a.KafkaConsumer != nil {
		g.Go(func() error {
			a.Logger.Infof(gctx, "kafka consumer starting")
			err := a.KafkaConsumer.Run(gctx)
			if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("kafka consumer: %w", err)
		})
	}

	g.Go(func() error {
		a.Logger.Infof(gctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
		a.shutdownHTTP(ctx)
		return nil
	})

	err := g.Wait()
	if err != nil {
		a.Logger.Errorf(ctx, "background error: %v", err)
	}
	if a.KafkaConsumer != nil {
		if cErr := a.KafkaConsumer.Close(); cErr != nil {
			a.Logger.Warnf(ctx, "kafka consumer close error: %v", cErr)
		}
	}
	a.Logger.Infof(ctx, "service stopped")
	return err
}

func (a *App) shutdownHTTP(ctx context.Context) {
	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
		return
	}
	a.Logger.Infof(ctx, "http server stopped gracefully")
}
