package ports

import "context"

// MessageConsumer — фоновый читатель брокера; Run блокируется до отмены ctx.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
