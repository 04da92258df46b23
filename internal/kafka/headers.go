package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
)

// headerCarrier — propagation.TextMapCarrier поверх заголовков сообщения.
type headerCarrier struct {
	headers *[]kafka.Header
}

func (h headerCarrier) Get(key string) string {
	for _, hd := range *h.headers {
		if hd.Key == key {
			return string(hd.Value)
		}
	}
	return ""
}

func (h headerCarrier) Set(key, value string) {
	for i := range *h.headers {
		if (*h.headers)[i].Key == key {
			(*h.headers)[i].Value = []byte(value)
			return
		}
	}
	*h.headers = append(*h.headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (h headerCarrier) Keys() []string {
	keys := make([]string, 0, len(*h.headers))
	for _, hd := range *h.headers {
		keys = append(keys, hd.Key)
	}
	return keys
}

// injectTrace — traceparent/baggage из ctx в заголовки.
func injectTrace(ctx context.Context, msg *kafka.Message) {
	otel.GetTextMapPropagator().Inject(ctx, headerCarrier{headers: &msg.Headers})
}

// extractTrace — контекст трассировки продюсера из заголовков.
func extractTrace(ctx context.Context, msg *kafka.Message) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, headerCarrier{headers: &msg.Headers})
}
