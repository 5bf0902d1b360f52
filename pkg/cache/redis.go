package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache anahtarları "prefix:key" biçiminde saklar.
type RedisCache struct {
	client *redis.Client
	prefix string
}

var _ Cache = (*RedisCache)(nil)

// Option redis.Options ayarı.
type Option func(*redis.Options)

func WithPassword(password string) Option {
	return func(o *redis.Options) { o.Password = password }
}

func WithDB(db int) Option {
	return func(o *redis.Options) { o.DB = db }
}

// NewRedisClient adrese bağlanan bir istemci oluşturur. Bağlantı ilk komutta kurulur.
func NewRedisClient(addr string, opts ...Option) *redis.Client {
	o := &redis.Options{Addr: addr}
	for _, opt := range opts {
		opt(o)
	}
	return redis.NewClient(o)
}

// NewRedisCache mevcut bir istemciyi önekle sarar.
func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// Ping bağlantıyı doğrular.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) key(k string) string {
	var b strings.Builder
	b.Grow(len(r.prefix) + 1 + len(k))
	b.WriteString(r.prefix)
	b.WriteString(":")
	b.WriteString(k)
	return b.String()
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return b, err
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, r.key(key), value, ttl).Err()
}

func (r *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	return r.client.Del(ctx, full...).Err()
}

// Close istemciyi kapatır.
func (r *RedisCache) Close() error { return r.client.Close() }
