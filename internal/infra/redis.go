package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis connects the shared Redis client used for the job queues (backup
// uploads, report emails) and the active-menu cache. The ping fails fast at
// boot: the cart cannot run without its queue backend.
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
