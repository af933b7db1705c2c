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

// UniqueTopicAndGroup — топик и группа консьюмера, уникальные для теста.
// base="cart-itest" → "cart-itest-20250826T010203123456789" и "cart-itest-20250826T010203123456789-g".
func UniqueTopicAndGroup(base string) (topic, group string) {
	stamp := strings.ReplaceAll(time.Now().UTC().Format("20060102T150405.000000000"), ".", "")
	topic = base + "-" + stamp
	return topic, topic + "-g"
}

// EnsureTopic — создаёт топик с одной партицией через контроллер кластера и ждёт его в метаданных.
// broker: "host:port", "PLAINTEXT://host:port" или список через запятую (берётся первый).
func EnsureTopic(ctx context.Context, broker, topic string) error {
	addr := bootstrapAddr(broker)

	conn, err := kafka.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	ctrl, err := conn.Controller()
	_ = conn.Close()
	if err != nil {
		return fmt.Errorf("controller: %w", err)
	}

	admin, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		return fmt.Errorf("dial controller: %w", err)
	}
	defer admin.Close()

	err = admin.CreateTopics(kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return fmt.Errorf("create topic %q: %w", topic, err)
	}
	return waitPartitions(ctx, addr, topic, 5*time.Second)
}

// WriteJSON — публикует команду корзины одним сообщением.
func WriteJSON(ctx context.Context, brokers []string, topic string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return WriteRaw(ctx, brokers, topic, raw)
}

// WriteRaw — публикует произвольные байты (мусор для проверки пропуска).
func WriteRaw(ctx context.Context, brokers []string, topic string, payload []byte) error {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: false,
	}
	defer w.Close()
	return w.WriteMessages(ctx, kafka.Message{Value: payload})
}

// bootstrapAddr — первый адрес из bootstrap-строки без схемы.
func bootstrapAddr(raw string) string {
	first, _, _ := strings.Cut(raw, ",")
	first = strings.TrimSpace(first)
	if u, err := url.Parse(first); err == nil && u.Scheme != "" && u.Host != "" {
		return u.Host
	}
	return first
}

func waitPartitions(ctx context.Context, broker, topic string, limit time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()

	var lastErr error
	for {
		conn, err := kafka.DialContext(ctx, "tcp", broker)
		if err == nil {
			parts, perr := conn.ReadPartitions(topic)
			_ = conn.Close()
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
