package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps every entry of one namespace in a single Redis hash, so
// Clear and Len stay single commands. Ordering is whatever HKEYS reports.
type RedisStore struct {
	client *redis.Client
	hash   string
	ctx    context.Context
}

func NewRedisStore(addr, namespace string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	// Test connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStoreFromClient(client, namespace), nil
}

// NewRedisStoreFromClient wraps an existing client. The hash name is derived
// from namespace so several stores can share one Redis database.
func NewRedisStoreFromClient(client *redis.Client, namespace string) *RedisStore {
	if namespace == "" {
		namespace = "default"
	}
	return &RedisStore{
		client: client,
		hash:   "stash:" + namespace,
		ctx:    context.Background(),
	}
}

func (r *RedisStore) Get(key string) (string, bool, error) {
	val, err := r.client.HGet(r.ctx, r.hash, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return val, true, nil
}

func (r *RedisStore) Set(key, value string) error {
	return r.client.HSet(r.ctx, r.hash, key, value).Err()
}

func (r *RedisStore) Delete(key string) error {
	return r.client.HDel(r.ctx, r.hash, key).Err()
}

func (r *RedisStore) Clear() error {
	return r.client.Del(r.ctx, r.hash).Err()
}

func (r *RedisStore) Key(index int) (string, bool, error) {
	keys, err := r.Keys()
	if err != nil {
		return "", false, err
	}
	if index < 0 || index >= len(keys) {
		return "", false, nil
	}
	return keys[index], true, nil
}

func (r *RedisStore) Keys() ([]string, error) {
	return r.client.HKeys(r.ctx, r.hash).Result()
}

func (r *RedisStore) Len() (int, error) {
	n, err := r.client.HLen(r.ctx, r.hash).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Close closes the Redis connection
func (r *RedisStore) Close() error {
	return r.client.Close()
}
