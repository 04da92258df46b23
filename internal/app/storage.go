package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gunvolt24/storefront-cart/config"
	cachemem "github.com/Gunvolt24/storefront-cart/internal/cache/memory"
	"github.com/Gunvolt24/storefront-cart/internal/ports"
	"github.com/Gunvolt24/storefront-cart/internal/repo/postgres"
	"github.com/Gunvolt24/storefront-cart/internal/repo/redis"
)

// slotBackend — выбранное хранилище слотов и его обслуживание.
type slotBackend struct {
	storage ports.CartStorage
	purger  ports.ExpiredSlotPurger // nil, если истечением занимается само хранилище
	close   func()
}

// openStorage — memory | postgres | redis по Storage.Driver.
func openStorage(ctx context.Context, cfg *config.Config, log ports.Logger) (*slotBackend, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))

	switch driver {
	case "", "memory":
		s := cachemem.NewSlotStorage(cfg.Storage.MemoryCapacity, cfg.Storage.TTL)
		log.Warnf(ctx, "cart storage: memory (slots are lost on restart)")
		return &slotBackend{storage: s, purger: s, close: func() {}}, nil

	case "postgres":
		if err := postgres.Migrate(ctx, cfg.Postgres.DSN); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, fmt.Errorf("postgres pool: %w", err)
		}
		repo := postgres.NewCartSlotRepository(pool, cfg.Storage.TTL)
		log.Infof(ctx, "cart storage: postgres ttl=%s", cfg.Storage.TTL)
		return &slotBackend{storage: repo, purger: repo, close: pool.Close}, nil

	case "redis":
		client, err := redis.NewClient(ctx, redis.ClientOptions{
			URL:      cfg.Redis.URL,
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		repo := redis.NewCartSlotRepository(client, cfg.Redis.KeyPrefix, cfg.Storage.TTL)
		log.Infof(ctx, "cart storage: redis prefix=%s ttl=%s", cfg.Redis.KeyPrefix, cfg.Storage.TTL)
		return &slotBackend{
			storage: repo,
			close: func() {
				if err := client.Close(); err != nil {
					log.Warnf(ctx, "redis close: %v", err)
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
