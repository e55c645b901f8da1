// Package redis stores the document blob under a single Redis key.
package redis

import (
	"context"
	"crypto/tls"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/vlnch/anonbox/blob"
)

type RedisTransport struct {
	client redis.UniversalClient
	key    string
}

func NewRedisTransport(ctx context.Context, devMode bool, redisEndpoint string, docId string) (*RedisTransport, error) {
	var client redis.UniversalClient
	if devMode {
		client = redis.NewClient(&redis.Options{
			Addr: redisEndpoint,
		})
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: redisEndpoint,
			// Managed redis endpoints require TLS
			TLSConfig: &tls.Config{},
		})
	}

	err := client.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return &RedisTransport{client: client, key: "doc:{" + docId + "}"}, nil
}

func (r *RedisTransport) Get(ctx context.Context) ([]byte, error) {
	val, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, blob.ErrNotFound
		}
		return nil, err
	}
	return val, nil
}

func (r *RedisTransport) Patch(ctx context.Context, content []byte) error {
	// The document never expires; it is the system of record, not a cache.
	return r.client.Set(ctx, r.key, content, 0).Err()
}
