package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis parses the configured URL and opens a client. Redis backs both the
// job queues and the storefront price-list cache, so a dead connection is a
// startup failure rather than something to discover on the first request.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}
