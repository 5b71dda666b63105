package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Cyros-Sachin/Rescue-app/internal/models"
)

const (
	dispatchQueueKey = "dispatch_records"
)

// Publisher - интерфейс приемника уведомлений о назначении команд
type Publisher interface {
	Publish(ctx context.Context, record models.DispatchRecord) error
}

// RedisPublisher - реализация Publisher, использующая очередь в Redis
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish кладет запись о назначении в очередь Redis
func (p *RedisPublisher) Publish(ctx context.Context, record models.DispatchRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal dispatch record: %w", err)
	}

	// LPUSH добавляет запись в левую часть списка (очереди)
	if err := p.redisClient.LPush(ctx, dispatchQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish dispatch record to Redis: %w", err)
	}
	return nil
}
