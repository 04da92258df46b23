//go:build integration

package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// UniqueTopicAndGroup — topic и group, которые не пересекаются между тестами.
func UniqueTopicAndGroup(base string) (topic, group string) {
	suffix := strings.ReplaceAll(time.Now().UTC().Format("20060102T150405.000000000"), ".", "")
	return base + "-" + suffix, base + "-g-" + suffix
}

// EnsureTopic — создаёт топик через контроллер кластера и ждёт его в метаданных.
// broker: "host:port", "PLAINTEXT://host:port" или список через запятую.
func EnsureTopic(ctx context.Context, broker, topic string) error {
	addr := bootstrapAddr(broker)

	conn, err := kafka.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctrl, err := conn.Controller()
	if err != nil {
		return err
	}

	admin, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		return err
	}
	defer admin.Close()

	err = admin.CreateTopics(kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return err
	}

	return waitTopicReady(ctx, addr, topic)
}

// ProduceJSON — синхронно пишет одно сообщение (ключ + JSON-значение).
// v типа []byte уходит как есть, чтобы можно было слать мусор.
func ProduceJSON(ctx context.Context, brokers []string, topic, key string, v any) error {
	value, ok := v.([]byte)
	if !ok {
		var err error
		if value, err = json.Marshal(v); err != nil {
			return err
		}
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(bootstrapList(brokers)...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
	defer w.Close()

	return w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: value})
}

// ReadOne — первое сообщение топика с начала (без consumer group).
func ReadOne(ctx context.Context, brokers []string, topic string) (kafka.Message, error) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   bootstrapList(brokers),
		Topic:     topic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  1 << 20,
	})
	defer r.Close()

	return r.ReadMessage(ctx)
}

func bootstrapList(brokers []string) []string {
	out := make([]string, 0, len(brokers))
	for _, b := range brokers {
		out = append(out, bootstrapAddr(b))
	}
	return out
}

// bootstrapAddr — первый адрес без схемы.
func bootstrapAddr(raw string) string {
	first, _, _ := strings.Cut(raw, ",")
	first = strings.TrimSpace(first)

	if strings.Contains(first, "://") {
		if u, err := url.Parse(first); err == nil && u.Host != "" {
			return u.Host
		}
	}
	return first
}

func waitTopicReady(ctx context.Context, broker, topic string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()

	var lastErr error
	for {
		c, err := kafka.DialContext(ctx, "tcp", broker)
		if err == nil {
			parts, perr := c.ReadPartitions(topic)
			_ = c.Close()
			if perr == nil && len(parts) > 0 {
				return nil
			}
			err = perr
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return fmt.Errorf("topic %q not ready: %w", topic, errors.Join(ctx.Err(), lastErr))
		case <-tick.C:
		}
	}
}
