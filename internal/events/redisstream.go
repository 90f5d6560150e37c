package events

import (
	"context"
	"fmt"

	"github.com/YusovID/bloodbank-service/internal/config"
	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis and checks the connection.
func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// RedisStreamPublisher appends events to a Redis stream with XADD, one entry per event.
type RedisStreamPublisher struct {
	client redis.Cmdable
	stream string
	maxLen int64
}

func NewRedisStreamPublisher(client redis.Cmdable, stream string, maxLen int64) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
		stream: stream,
		maxLen: maxLen,
	}
}

func (p *RedisStreamPublisher) Name() string { return "redis" }

func (p *RedisStreamPublisher) Publish(ctx context.Context, events []domain.Event) error {
	const op = "internal.events.redisstream.Publish"

	pipe := p.client.TxPipeline()

	for _, e := range events {
		data, err := encode(e)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		args := &redis.XAddArgs{
			Stream: p.stream,
			Values: map[string]any{
				"event_id":     e.ID,
				"type":         string(e.Type),
				"aggregate_id": e.AggregateID,
				"data":         string(data),
			},
		}

		if p.maxLen > 0 {
			args.MaxLen = p.maxLen
			args.Approx = true
		}

		pipe.XAdd(ctx, args)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: failed to append to stream '%s': %w", op, p.stream, err)
	}

	return nil
}
