package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisRepository stores entities as JSON documents in Redis.
type RedisRepository struct {
	client   redis.Cmdable
	registry *Registry
	prefix   string
}

// NewRedisRepository creates a repository over client. Keys are namespaced by prefix.
func NewRedisRepository(client redis.Cmdable, registry *Registry, prefix string) *RedisRepository {
	return &RedisRepository{client: client, registry: registry, prefix: prefix}
}

// NewRedisClient builds a client from configuration.
func NewRedisClient(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func (r *RedisRepository) redisKey(kind Kind, key string) string {
	if r.prefix == "" {
		return string(kind) + ":" + key
	}
	return r.prefix + ":" + string(kind) + ":" + key
}

func (r *RedisRepository) Load(ctx context.Context, kind Kind, key string) (Entity, error) {
	if err := validate(kind, key); err != nil {
		return nil, err
	}
	entity, err := r.registry.New(kind)
	if err != nil {
		return nil, err
	}

	data, err := r.client.Get(ctx, r.redisKey(kind, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s %q: %w", kind, key, err)
	}
	if err := json.Unmarshal(data, entity); err != nil {
		return nil, fmt.Errorf("failed to decode %s %q: %w", kind, key, err)
	}
	return entity, nil
}

func (r *RedisRepository) Save(ctx context.Context, entity Entity) error {
	if err := validate(entity.Kind(), entity.Key()); err != nil {
		return err
	}
	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to encode %s %q: %w", entity.Kind(), entity.Key(), err)
	}
	if err := r.client.Set(ctx, r.redisKey(entity.Kind(), entity.Key()), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s %q: %w", entity.Kind(), entity.Key(), err)
	}
	return nil
}

func (r *RedisRepository) Remove(ctx context.Context, kind Kind, key string) error {
	if err := validate(kind, key); err != nil {
		return err
	}
	if err := r.client.Del(ctx, r.redisKey(kind, key)).Err(); err != nil {
		return fmt.Errorf("failed to remove %s %q: %w", kind, key, err)
	}
	return nil
}
