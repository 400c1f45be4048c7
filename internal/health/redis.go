package health

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisPinger adapts a go-redis client to Pinger.
type RedisPinger struct {
	client *redis.Client
}

func NewRedisPinger(opt *redis.Options) *RedisPinger {
	return &RedisPinger{client: redis.NewClient(opt)}
}

func (p *RedisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func (p *RedisPinger) Close() error {
	return p.client.Close()
}
