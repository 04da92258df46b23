package kafka

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Gunvolt24/storefront-cart/internal/domain"
	"github.com/Gunvolt24/storefront-cart/internal/ports"
	"github.com/Gunvolt24/storefront-cart/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

var _ ports.CartEventPublisher = (*Publisher)(nil)

//go:generate mockgen -source=publisher.go -destination=mocks/mock_writer.go -package=mocks

// writer — минимальный контракт над kafka.Writer.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PublisherConfig — куда отправлять события корзины.
type PublisherConfig struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
}

// Publisher — отправка CartEvent в Kafka, ключ сообщения = cart_id
// (все события одной корзины попадают в одну партицию).
// Порядок доставки не гарантирован: сортировать по CartEvent.Version.
type Publisher struct {
	w         writer
	topic     string
	log       ports.Logger
	closeOnce sync.Once
}

// NewPublisher — асинхронный writer: WriteMessages не ждёт подтверждения брокера,
// результат доставки приходит в Completion.
func NewPublisher(cfg *PublisherConfig, log ports.Logger) *Publisher {
	bt := cfg.BatchTimeout
	if bt <= 0 {
		bt = 50 * time.Millisecond
	}

	topic := cfg.Topic
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           bt,
		Async:                  true,
		AllowAutoTopicCreation: true,
		Completion: func(msgs []kafka.Message, err error) {
			result := "ok"
			if err != nil {
				result = "error"
				log.Warnf(context.Background(), "cart events delivery failed topic=%s count=%d: %v", topic, len(msgs), err)
			}
			metrics.KafkaMessagesPublished.WithLabelValues(topic, result).Add(float64(len(msgs)))
		},
	}

	return newPublisher(w, topic, log)
}

func newPublisher(w writer, topic string, log ports.Logger) *Publisher {
	return &Publisher{w: w, topic: topic, log: log}
}

// Publish — fire-and-forget: ошибки только логируются.
// Сигнатура совпадает с usecase.CartListener.
func (p *Publisher) Publish(ctx context.Context, event domain.CartEvent) {
	value, err := json.Marshal(event)
	if err != nil {
		p.log.Errorf(ctx, "marshal cart event cart_id=%s: %v", event.CartID, err)
		metrics.KafkaMessagesPublished.WithLabelValues(p.topic, "error").Inc()
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.CartID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Op)},
		},
	}
	injectTrace(ctx, &msg)

	// запрос может завершиться раньше, чем writer заберёт сообщение
	if err := p.w.WriteMessages(context.WithoutCancel(ctx), msg); err != nil {
		p.log.Warnf(ctx, "publish cart event cart_id=%s op=%s: %v", event.CartID, event.Op, err)
		metrics.KafkaMessagesPublished.WithLabelValues(p.topic, "error").Inc()
	}
}

// Close — дожидается отправки буфера и закрывает writer.
func (p *Publisher) Close() (retErr error) {
	p.closeOnce.Do(func() {
		retErr = p.w.Close()
	})
	return retErr
}
