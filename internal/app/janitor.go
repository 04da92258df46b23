package app

import (
	"context"
	"time"

	"github.com/Gunvolt24/storefront-cart/internal/ports"
)

var _ ports.MessageConsumer = (*Janitor)(nil)

// Janitor — периодически удаляет истёкшие слоты корзин.
// Нужен хранилищам без собственного TTL (Postgres, память процесса).
type Janitor struct {
	purger   ports.ExpiredSlotPurger
	interval time.Duration
	log      ports.Logger
}

func NewJanitor(purger ports.ExpiredSlotPurger, interval time.Duration, log ports.Logger) *Janitor {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Janitor{purger: purger, interval: interval, log: log}
}

// Run — блокируется до отмены ctx; ошибки чистки только логируются.
func (j *Janitor) Run(ctx context.Context) error {
	t := time.NewTicker(j.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			j.purgeOnce(ctx)
		}
	}
}

func (j *Janitor) purgeOnce(ctx context.Context) {
	n, err := j.purger.PurgeExpired(ctx)
	if err != nil {
		if ctx.Err() == nil {
			j.log.Warnf(ctx, "purge expired cart slots failed: %v", err)
		}
		return
	}
	if n > 0 {
		j.log.Infof(ctx, "purged expired cart slots count=%d", n)
	}
}

func (j *Janitor) Close() error { return nil }
