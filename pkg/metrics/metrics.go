package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
	KafkaMessagesPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_published_total",
			Help: "Cart events handed to the Kafka writer",
		},
		[]string{"topic", "result"}, // ok|error
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"cache", "op"}, // hit|miss|evicted|expired
	)
	CacheSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in cache",
		},
		[]string{"cache"},
	)
)

var (
	CartOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "Cart mutations by operation and outcome",
		},
		[]string{"op", "result"}, // result: changed|noop|rejected
	)
	CartPersistFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_persist_failures_total",
			Help: "Failed writes/deletes of the persisted cart slot",
		},
		[]string{"op"}, // save|delete
	)
	CartRestores = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_restores_total",
			Help: "Cart restores from the persisted slot",
		},
		[]string{"result"}, // restored|empty|corrupt|error
	)
	CatalogRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Requests to the product catalog",
		},
		[]string{"outcome"}, // ok|not_found|error
	)
)

var registerOnce sync.Once

// MustRegister — регистрация в глобальном реестре; повторный вызов безопасен.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed, KafkaMessagesPublished,
			CacheOps, CacheSize,
			CartOps, CartPersistFailures, CartRestores, CatalogRequests,
		)
	})
}
