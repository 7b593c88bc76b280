package storage

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps blobs in Redis, for stands that already run one
// locally. Keys never expire; the collections are the system of record.
type RedisStore struct {
	Client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client, prefix: "juicepos:blob:"}
}

// DialRedis connects and verifies the server is reachable before the
// store is handed to anyone.
func DialRedis(addr string, poolSize int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		PoolSize: poolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return NewRedisStore(client), nil
}

func (r *RedisStore) Get(key string) ([]byte, error) {
	val, err := r.Client.Get(context.Background(), r.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (r *RedisStore) Set(key string, value []byte) error {
	return r.Client.Set(context.Background(), r.prefix+key, value, 0).Err()
}

func (r *RedisStore) Close() error {
	return r.Client.Close()
}
