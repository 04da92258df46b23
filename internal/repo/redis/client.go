package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// ClientOptions — адрес Redis: URL (redis://...) имеет приоритет над Addr.
type ClientOptions struct {
	URL      string
	Addr     string
	Password string
	DB       int
}

// NewClient — клиент Redis с Ping для fail-fast.
func NewClient(ctx context.Context, o ClientOptions) (*goredis.Client, error) {
	var opt *goredis.Options
	if o.URL != "" {
		parsed, err := goredis.ParseURL(o.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opt = parsed
	} else {
		opt = &goredis.Options{
			Addr:     o.Addr,
			Password: o.Password,
			DB:       o.DB,
		}
	}

	client := goredis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
