package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const retryInterval = 250 * time.Millisecond

// ErrNotFound is returned when a key does not exist in the store
var ErrNotFound = errors.New("cache: key not found")

type Options struct {
	Addr           string
	Password       string
	DB             int
	ConnectTimeout time.Duration
}

// Redis is the cache and session backing store shared by the whole server
type Redis struct {
	client *redis.Client
	opts   Options
}

func New(opts Options) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		}),
		opts: opts,
	}
}

// Connect blocks until the store answers a ping, the context is done or the
// connect timeout expires, whichever comes first.
func (r *Redis) Connect(ctx context.Context) error {
	if r.opts.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.ConnectTimeout)
		defer cancel()
	}

	for {
		err := r.client.Ping(ctx).Err()
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("connecting to redis at %s: %w", r.opts.Addr, err)
		case <-time.After(retryInterval):
		}
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return value, err
}

func (r *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
