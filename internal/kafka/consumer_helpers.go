package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/Gunvolt24/storefront-cart/pkg/metrics"
	"github.com/Gunvolt24/storefront-cart/pkg/validate"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "storefront-cart/kafka"

// handleMessage обрабатывает одно сообщение и определяет нужно ли коммитить оффсет.
func (c *Consumer) handleMessage(ctx context.Context, topic string, msg *kafka.Message) bool {
	msgCtx, span := otel.Tracer(tracerName).Start(extractTrace(ctx, msg), "checkout.consume")
	span.SetAttributes(
		attribute.String("messaging.destination.name", topic),
		attribute.Int64("messaging.kafka.offset", msg.Offset),
	)
	defer span.End()

	ctxTimeout, cancel := context.WithTimeout(msgCtx, c.processTimeout)
	err := c.handler.HandleCheckoutEvent(ctxTimeout, msg.Value)
	cancel()

	switch {
	case err == nil:
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
		return true
	case errors.Is(err, validate.ErrInvalidEvent):
		// мусор не ретраим
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		span.SetStatus(codes.Error, "invalid event")
		c.log.Warnf(msgCtx, "invalid message offset=%d: %v (skipped)", msg.Offset, err)
		return true
	default:
		// временная ошибка (хранилище/таймаут): НЕ коммитим
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.log.Warnf(msgCtx, "process failed offset=%d: %v (will retry without commit)", msg.Offset, err)
		return false
	}
}

// commitSafely пытается закоммитить оффсет и залогировать ошибку.
func (c *Consumer) commitSafely(ctx context.Context, msg *kafka.Message) {
	if commitErr := c.reader.CommitMessages(ctx, *msg); commitErr != nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, commitErr)
	}
}

// sleepWithBackoff ждет backoff или останавливается по контексту.
func (c *Consumer) sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// nextBackoff возвращает следующее время ожидания повтора с учетом retryMax.
func (c *Consumer) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > c.retryMax {
		return c.retryMax
	}
	return current
}

// withJitterEqual — половина задержки фиксирована, вторая половина случайна.
func (c *Consumer) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	jitter := time.Duration(c.jitterRand.Int63n(int64(d-half) + 1))
	return half + jitter
}
