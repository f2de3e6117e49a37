package persist

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisSnapshotter stores each snapshot blob under a Redis string key,
// mirroring the original local-storage semantics: one value per store,
// overwritten on every mutation.
type RedisSnapshotter struct {
	client *redis.Client
}

func NewRedisSnapshotter(client *redis.Client) *RedisSnapshotter {
	return &RedisSnapshotter{client: client}
}

func (r *RedisSnapshotter) Load(ctx context.Context, key string) ([]byte, bool, error) {
	blob, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return blob, true, nil
}

func (r *RedisSnapshotter) Save(ctx context.Context, key string, blob []byte) error {
	return r.client.Set(ctx, key, blob, 0).Err()
}
