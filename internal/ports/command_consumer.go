package ports

import "context"

// CommandConsumer — фоновый источник команд корзины (топик Kafka).
// Run блокируется до отмены ctx; Close освобождает соединения и безопасен при повторном вызове.
type CommandConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
