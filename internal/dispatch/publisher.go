package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/safewords/safewords_backend/internal/models"
)

const dispatchQueueKey = "dispatch_jobs"

// RedisDispatchPublisher - реализация service.DispatchPublisher,
// использующая Redis
type RedisDispatchPublisher struct {
	redisClient *redis.Client
}

// NewRedisDispatchPublisher создает новый RedisDispatchPublisher
func NewRedisDispatchPublisher(client *redis.Client) *RedisDispatchPublisher {
	return &RedisDispatchPublisher{
		redisClient: client,
	}
}

// Publish публикует задание на рассылку в очередь Redis
func (p *RedisDispatchPublisher) Publish(ctx context.Context, job models.DispatchJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal dispatch job: %w", err)
	}

	// Используем LPUSH для добавления задания в левую часть списка (очереди)
	if err := p.redisClient.LPush(ctx, dispatchQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish dispatch job to Redis: %w", err)
	}
	return nil
}
