package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mikey/sms-spam-filter/internal/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultRedisKeyPrefix namespaces model keys
const DefaultRedisKeyPrefix = "sms-spam:model"

// RedisStore keeps each model as a payload string plus a metadata hash
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	logger    *zap.Logger
}

// NewRedisStore connects to redisURL and verifies the connection
func NewRedisStore(ctx context.Context, redisURL, keyPrefix string, logger *zap.Logger) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStoreWithClient(client, keyPrefix, logger), nil
}

// NewRedisStoreWithClient wraps an existing client
func NewRedisStoreWithClient(client *redis.Client, keyPrefix string, logger *zap.Logger) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = DefaultRedisKeyPrefix
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix, logger: logger}
}

func (s *RedisStore) payloadKey(name string) string {
	return fmt.Sprintf("%s:%s", s.keyPrefix, name)
}

func (s *RedisStore) metaKey(name string) string {
	return fmt.Sprintf("%s:%s:meta", s.keyPrefix, name)
}

// Save stores a pipeline under name
func (s *RedisStore) Save(ctx context.Context, name string, pipeline *core.Pipeline) error {
	data, err := Encode(pipeline)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.payloadKey(name), data, 0)
		pipe.HSet(ctx, s.metaKey(name),
			"vocabulary_size", pipeline.Vocabulary.Len(),
			"trained_at", pipeline.TrainedAt.UTC().Format(time.RFC3339),
			"version", FormatVersion)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store model in Redis: %w", err)
	}

	s.logger.Debug("Stored model in Redis", zap.String("key", s.payloadKey(name)), zap.Int("bytes", len(data)))
	return nil
}

// Load retrieves the pipeline stored under name
func (s *RedisStore) Load(ctx context.Context, name string) (*core.Pipeline, error) {
	data, err := s.client.Get(ctx, s.payloadKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read model from Redis: %w", err)
	}
	return Decode(data)
}

// Delete removes the pipeline stored under name
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	deleted, err := s.client.Del(ctx, s.payloadKey(name), s.metaKey(name)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete model from Redis: %w", err)
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the Redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ core.ModelRepository = (*RedisStore)(nil)
