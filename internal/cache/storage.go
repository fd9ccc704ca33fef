package cache

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const (
	sessionPrefix  = "session:"
	storageTimeout = 5 * time.Second
	scanBatch      = 100
)

// Storage adapts the store to fiber.Storage, keeping every key under a prefix so
// that Reset never touches data outside of it.
type Storage struct {
	client *redis.Client
	prefix string
}

var _ fiber.Storage = (*Storage)(nil)

// Storage returns a fiber.Storage used as the session backing store
func (r *Redis) Storage() fiber.Storage {
	return r.StorageWithPrefix(sessionPrefix)
}

func (r *Redis) StorageWithPrefix(prefix string) *Storage {
	return &Storage{client: r.client, prefix: prefix}
}

// Get returns nil, nil when the key does not exist, as fiber.Storage expects
func (s *Storage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	value, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return value, err
}

func (s *Storage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	return s.client.Set(ctx, s.prefix+key, val, exp).Err()
}

func (s *Storage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	return s.client.Del(ctx, s.prefix+key).Err()
}

func (s *Storage) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	iter := s.client.Scan(ctx, 0, s.prefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close is a no-op, the underlying client belongs to Redis and is closed with it
func (s *Storage) Close() error {
	return nil
}
