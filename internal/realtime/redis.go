package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campusgigs/campusgigs-api/internal/config"
)

// RedisBridge mirrors chat events across instances over Redis pub/sub so a
// websocket held by one instance sees messages sent through another.
type RedisBridge struct {
	client     *redis.Client
	instanceID string
}

type envelope struct {
	Origin string `json:"origin"`
	Event  Event  `json:"event"`
}

func NewRedisBridge(ctx context.Context, conf *config.RedisConfig) (*RedisBridge, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("client.Ping -> %w", err)
	}

	return &RedisBridge{
		client:     client,
		instanceID: uuid.NewString(),
	}, nil
}

func (b *RedisBridge) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(envelope{
		Origin: b.instanceID,
		Event:  event,
	})
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	if err = b.client.Publish(ctx, event.Channel(), payload).Err(); err != nil {
		return fmt.Errorf("b.client.Publish -> %w", err)
	}

	return nil
}

// Listen pumps bridged events into the hub until ctx is canceled. Events
// published by this instance are skipped; the hub already delivered them.
func (b *RedisBridge) Listen(ctx context.Context, hub *Hub) {
	pubsub := b.client.PSubscribe(ctx, "messages:*")
	defer pubsub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-pubsub.Channel():
			if !ok {
				return
			}

			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				zap.L().Warn("dropping malformed bridge payload",
					zap.String("channel", msg.Channel),
					zap.Error(err),
				)
				continue
			}
			if env.Origin == b.instanceID {
				continue
			}

			hub.ApplyRemote(env.Event)
		}
	}
}

func (b *RedisBridge) Close() error {
	return b.client.Close()
}
