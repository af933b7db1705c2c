package kafka

import (
	"errors"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	defaultProcessTimeout = 10 * time.Second
	defaultRetryInitial   = time.Second
	defaultRetryMax       = 30 * time.Second
	defaultMaxWait        = time.Second
	defaultMaxAttempts    = 10
)

// ErrInvalidConfig — конфигурация консьюмера неполная.
var ErrInvalidConfig = errors.New("invalid kafka consumer config")

// ConsumerConfig — параметры консьюмера команд корзины.
type ConsumerConfig struct {
	Brokers     []string
	Topic       string
	GroupID     string
	StartOffset string // first|last; всё прочее трактуется как last

	MaxWait        time.Duration // сколько reader ждёт пачку сообщений от брокера
	ProcessTimeout time.Duration // лимит на применение одной команды
	RetryInitial   time.Duration // первая пауза после ошибки
	RetryMax       time.Duration // потолок экспоненциальной паузы
	MaxAttempts    int           // попыток на временную ошибку; затем команда коммитится как отброшенная
}

// Validate — брокеры, топик и группа обязательны: без группы нет ручного коммита оффсетов.
func (c *ConsumerConfig) Validate() error {
	brokers := 0
	for _, b := range c.Brokers {
		if strings.TrimSpace(b) != "" {
			brokers++
		}
	}
	switch {
	case brokers == 0:
		return errors.Join(ErrInvalidConfig, errors.New("no brokers"))
	case strings.TrimSpace(c.Topic) == "":
		return errors.Join(ErrInvalidConfig, errors.New("empty topic"))
	case strings.TrimSpace(c.GroupID) == "":
		return errors.Join(ErrInvalidConfig, errors.New("empty group id"))
	}
	if c.RetryMax > 0 && c.RetryInitial > c.RetryMax {
		return errors.Join(ErrInvalidConfig, errors.New("retry initial exceeds retry max"))
	}
	return nil
}

// withDefaults — копия с заполненными нулевыми таймингами.
func (c ConsumerConfig) withDefaults() ConsumerConfig {
	if c.MaxWait <= 0 {
		c.MaxWait = defaultMaxWait
	}
	if c.ProcessTimeout <= 0 {
		c.ProcessTimeout = defaultProcessTimeout
	}
	if c.RetryInitial <= 0 {
		c.RetryInitial = defaultRetryInitial
	}
	if c.RetryMax <= 0 {
		c.RetryMax = defaultRetryMax
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	return c
}

// ReaderConfig — конфигурация kafka.Reader с ручным коммитом оффсетов.
func (c *ConsumerConfig) ReaderConfig() kafka.ReaderConfig {
	d := c.withDefaults()

	rc := kafka.ReaderConfig{
		Brokers:        d.Brokers,
		GroupID:        d.GroupID,
		Topic:          d.Topic,
		MaxWait:        d.MaxWait,
		CommitInterval: 0,
		StartOffset:    kafka.LastOffset,
	}
	if strings.EqualFold(strings.TrimSpace(d.StartOffset), "first") {
		rc.StartOffset = kafka.FirstOffset
	}
	return rc
}
