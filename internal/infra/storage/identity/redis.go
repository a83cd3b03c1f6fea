package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-BookingClient/internal/session"
)

const redisKeyPrefix = "booking-client:identity:"

// RedisStore хранит личность в redis под ключом профиля
type RedisStore struct {
	client RedisClient
	key    string
	ttl    time.Duration
}

// NewRedisStore создает redis-хранилище; ttl == 0 означает без истечения
func NewRedisStore(client RedisClient, profile string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		key:    redisKeyPrefix + profile,
		ttl:    ttl,
	}
}

// Load читает личность по ключу профиля
func (s *RedisStore) Load(ctx context.Context) (*session.Identity, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: Load - get %s: %v", ErrRedis, s.key, err)
	}

	var identity session.Identity
	if err := json.Unmarshal([]byte(val), &identity); err != nil {
		return nil, fmt.Errorf("%w: Load: %v", ErrDecode, err)
	}
	return &identity, nil
}

// Save сохраняет личность
func (s *RedisStore) Save(ctx context.Context, identity *session.Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("%w: Save: %v", ErrEncode, err)
	}
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - set %s: %v", ErrRedis, s.key, err)
	}
	return nil
}

// Clear удаляет ключ профиля
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("%w: Clear - del %s: %v", ErrRedis, s.key, err)
	}
	return nil
}
