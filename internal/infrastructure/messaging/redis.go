// Package messaging pushes notification events to live UI sessions over
// redis pub/sub.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/studioforma/atelier/internal/domain/model"
)

// RedisClient is the minimal pub/sub surface the service needs.
type RedisClient interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Close() error
}

type redisClient struct {
	client *redis.Client
}

// NewRedisClient connects to redis and verifies the connection.
func NewRedisClient(addr, password string, db int) (RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &redisClient{client: client}, nil
}

func (r *redisClient) Publish(ctx context.Context, channel string, payload []byte) error {
	return r.client.Publish(ctx, channel, payload).Err()
}

func (r *redisClient) Close() error {
	return r.client.Close()
}

// NotificationPublisher fans a persisted notification out to the shared
// channel and the recipient's own channel. It implements
// usecase.EventPublisher.
type NotificationPublisher struct {
	redis   RedisClient
	channel string
}

// NewNotificationPublisher creates a new notification publisher.
func NewNotificationPublisher(client RedisClient, channel string) *NotificationPublisher {
	return &NotificationPublisher{
		redis:   client,
		channel: channel,
	}
}

// PublishNotification publishes the notification to the shared channel and
// to <channel>:<user_id>.
func (p *NotificationPublisher) PublishNotification(ctx context.Context, notification *model.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	userChannel := fmt.Sprintf("%s:%s", p.channel, notification.UserID)
	if err := p.redis.Publish(ctx, userChannel, payload); err != nil {
		return fmt.Errorf("failed to publish to user channel: %w", err)
	}

	if err := p.redis.Publish(ctx, p.channel, payload); err != nil {
		return fmt.Errorf("failed to publish to shared channel: %w", err)
	}

	return nil
}

// Close shuts the underlying redis connection down.
func (p *NotificationPublisher) Close() error {
	return p.redis.Close()
}
