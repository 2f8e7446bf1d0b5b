package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"motoschool/models"

	"github.com/go-redis/redis/v8"
)

// SessionStore persists checkout sessions with a sliding TTL. The Redis
// implementation is the production store; tests substitute an in-memory one.
type SessionStore interface {
	Save(ctx context.Context, sess *models.CheckoutSession, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (*models.CheckoutSession, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps sessions JSON-marshalled in Redis under the
// session id.
type RedisSessionStore struct {
	Client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{Client: client}
}

func (s *RedisSessionStore) Save(ctx context.Context, sess *models.CheckoutSession, ttl time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal checkout session: %w", err)
	}
	if err := s.Client.Set(ctx, sess.SessionID, data, ttl).Err(); err != nil {
		return fmt.Errorf("store checkout session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	data, err := s.Client.Get(ctx, sessionID).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load checkout session: %w", err)
	}
	var sess models.CheckoutSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("parse checkout session: %w", err)
	}
	return &sess, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.Client.Del(ctx, sessionID).Err(); err != nil {
		return fmt.Errorf("delete checkout session: %w", err)
	}
	return nil
}
