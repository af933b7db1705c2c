package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Проверка, что Consumer удовлетворяет интерфейсу верхнего уровня (порт приложения).
var _ ports.CommandConsumer = (*Consumer)(nil)

const tracerName = "github.com/Gunvolt24/wb_cart/internal/kafka"

// reader — минимальный контракт над источником (kafka.Reader),
// чтобы легко подменять его моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// Consumer — читает команды корзины из топика и применяет их через CartService.
// Корзина сама сериализует операции, поэтому команды из топика и HTTP-запросы не конфликтуют.
type Consumer struct {
	reader     reader
	service    ports.CartService
	log        ports.Logger
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator

	processTimeout time.Duration
	maxAttempts    int
	fetchBackoff   *backoff
	retryBackoff   *backoff

	closeOnce sync.Once
}

// NewConsumer — конструктор. ReaderConfig() настроен на ручной коммит оффсетов.
func NewConsumer(cfg *ConsumerConfig, service ports.CartService, log ports.Logger) (*Consumer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newConsumer(kafka.NewReader(cfg.ReaderConfig()), cfg, service, log), nil
}

func newConsumer(r reader, cfg *ConsumerConfig, service ports.CartService, log ports.Logger) *Consumer {
	d := cfg.withDefaults()
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Consumer{
		reader:         r,
		service:        service,
		log:            log,
		tracer:         otel.Tracer(tracerName),
		propagator:     otel.GetTextMapPropagator(),
		processTimeout: d.ProcessTimeout,
		maxAttempts:    d.MaxAttempts,
		fetchBackoff:   newBackoff(d.RetryInitial, d.RetryMax, rnd),
		retryBackoff:   newBackoff(d.RetryInitial, d.RetryMax, rnd),
	}
}

// Run — основной цикл, at-least-once:
//   - сообщение читается без авто-коммита;
//   - команда применена, отклонена по состоянию корзины или нечитаема → CommitMessages;
//   - API магазина ответило 4xx → отказ, CommitMessages;
//   - временная ошибка → повтор той же команды с паузой; после MaxAttempts команда
//     отбрасывается с записью в лог и коммитится;
//   - при отмене посреди повторов оффсет не коммитится и сообщение придёт снова после рестарта.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "cart command consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			sleep := c.fetchBackoff.next()
			c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", err, sleep)
			if !sleepCtx(ctx, sleep) {
				return ctx.Err()
			}
			continue
		}
		c.fetchBackoff.reset()
		metrics.CommandsConsumed.WithLabelValues(rc.Topic).Inc()

		if !c.process(ctx, rc.Topic, msg) {
			return ctx.Err()
		}
		c.commit(ctx, msg)
	}
}

// Close — закрывает reader; повторные вызовы ничего не делают.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}
