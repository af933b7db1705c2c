package kafka

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Gunvolt24/wb_cart/internal/client/inventory"
	"github.com/Gunvolt24/wb_cart/internal/usecase"
	"github.com/Gunvolt24/wb_cart/pkg/ctxmeta"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// outcome — что делать с оффсетом после попытки применить команду.
type outcome int

const (
	outcomeApplied   outcome = iota // коммит
	outcomeRejected                 // коммит: повтор даст тот же отказ
	outcomeTransient                // повтор с паузой, не больше maxAttempts
)

func classify(err error) outcome {
	switch {
	case err == nil:
		return outcomeApplied
	case errors.Is(err, usecase.ErrStockExceeded), errors.Is(err, usecase.ErrNotFound), errors.Is(err, ErrInvalidCommand):
		return outcomeRejected
	case upstreamRejected(err):
		return outcomeRejected
	default:
		return outcomeTransient
	}
}

// upstreamRejected — API магазина ответило 4xx (неизвестный товар и т.п.).
// 408 и 429 повторяемы.
func upstreamRejected(err error) bool {
	var se *inventory.StatusError
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return false
	}
	return se.Code >= http.StatusBadRequest && se.Code < http.StatusInternalServerError
}

// process — разбирает и применяет одну команду. true — оффсет можно коммитить
// (в том числе когда команда отброшена после maxAttempts); false — ctx отменён
// до завершения, коммитить нельзя.
func (c *Consumer) process(ctx context.Context, topic string, msg kafka.Message) bool {
	ctx = ctxmeta.WithRequestID(ctx, fmt.Sprintf("kafka:%s/%d/%d", topic, msg.Partition, msg.Offset))
	ctx = c.propagator.Extract(ctx, headerCarrier{headers: &msg.Headers})
	ctx, span := c.tracer.Start(ctx, "cart.command",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.destination.name", topic),
			attribute.Int64("messaging.kafka.offset", msg.Offset),
		))
	defer span.End()

	cmd, err := DecodeCommand(msg.Value)
	if err != nil {
		metrics.CommandsFailed.WithLabelValues(topic).Inc()
		span.SetStatus(codes.Error, "invalid command")
		c.log.Warnf(ctx, "invalid command offset=%d: %v (skipped)", msg.Offset, err)
		return true
	}
	ctx = ctxmeta.WithOperation(ctx, cmd.Op)
	span.SetAttributes(attribute.String("cart.op", cmd.Op), attribute.Int("cart.product_id", cmd.ProductID))

	defer c.retryBackoff.reset()
	for attempt := 1; ; attempt++ {
		err := c.apply(ctx, cmd)
		switch classify(err) {
		case outcomeApplied:
			metrics.CommandsProcessed.WithLabelValues(topic).Inc()
			return true

		case outcomeRejected:
			metrics.CommandsFailed.WithLabelValues(topic).Inc()
			span.SetStatus(codes.Error, "rejected")
			c.log.Infof(ctx, "command rejected offset=%d product_id=%d: %v", msg.Offset, cmd.ProductID, err)
			return true

		default:
			metrics.CommandsFailed.WithLabelValues(topic).Inc()
			span.RecordError(err)
			if attempt >= c.maxAttempts {
				span.SetStatus(codes.Error, "dropped")
				c.log.Errorf(ctx, "command dropped offset=%d product_id=%d after %d attempts: %v",
					msg.Offset, cmd.ProductID, attempt, err)
				return true
			}
			sleep := c.retryBackoff.next()
			c.log.Warnf(ctx, "command failed offset=%d product_id=%d attempt=%d: %v (retry in %s)",
				msg.Offset, cmd.ProductID, attempt, err, sleep)
			if !sleepCtx(ctx, sleep) {
				span.SetStatus(codes.Error, "canceled before apply")
				return false
			}
		}
	}
}

// apply — одна попытка в пределах processTimeout.
func (c *Consumer) apply(ctx context.Context, cmd Command) error {
	ctx, cancel := context.WithTimeout(ctx, c.processTimeout)
	defer cancel()
	return cmd.Apply(ctx, c.service)
}

// commit — ошибка коммита только логируется: сообщение придёт повторно, а его команда
// к этому моменту уже применена (add повторится, remove/update идемпотентны).
func (c *Consumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, err)
	}
}
