package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/qkart/storefront/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis so they survive storefront restarts
// and can be shared across instances.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisConfig holds the Redis connection settings for the session store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	logger.Info("Initializing Redis session store", map[string]interface{}{
		"addr": cfg.Addr,
		"db":   cfg.DB,
	})

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis session store connected", nil)
	return &RedisStore{client: client, ttl: cfg.TTL}, nil
}

func sessionKey(sid string) string {
	return fmt.Sprintf("session:%s", sid)
}

func (s *RedisStore) Get(ctx context.Context, sid string) (*Session, error) {
	val, err := s.client.Get(ctx, sessionKey(sid)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Error("Failed to read session from Redis", err, nil)
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("corrupt session payload: %w", err)
	}
	return &sess, nil
}

func (s *RedisStore) Put(ctx context.Context, sid string, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, sessionKey(sid), data, s.ttl).Err(); err != nil {
		logger.Error("Failed to write session to Redis", err, nil)
		return err
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, sessionKey(sid)).Err(); err != nil {
		logger.Error("Failed to clear session from Redis", err, nil)
		return err
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
