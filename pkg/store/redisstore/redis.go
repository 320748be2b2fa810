// Package redisstore implements store.Store on top of Redis so that several
// client processes can share validated listing responses.
package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/goccy/go-json"
	"github.com/mrchypark/shopclient/pkg/store"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "shopclient:response:"

// RedisStore is a Redis-based implementation of store.Store. Each entry is a
// single JSON value so reads and writes are atomic without pipelines.
type RedisStore struct {
	client redis.UniversalClient
	logger log.Logger
	ttl    time.Duration
}

// New creates a RedisStore. A ttl of 0 keeps entries until they are replaced.
func New(client redis.UniversalClient, logger log.Logger, ttl time.Duration) *RedisStore {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &RedisStore{
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

var _ store.Store = (*RedisStore)(nil)

// Get retrieves and decodes the entry stored under key.
func (rs *RedisStore) Get(ctx context.Context, key string) (*store.Entry, error) {
	data, err := rs.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	var e store.Entry
	if err := json.Unmarshal(data, &e); err != nil {
		level.Warn(rs.logger).Log("msg", "dropping undecodable entry", "key", key, "err", err)
		_ = rs.client.Del(ctx, keyPrefix+key).Err()
		return nil, store.ErrNotFound
	}
	return &e, nil
}

// Set encodes e and writes it with the configured TTL.
func (rs *RedisStore) Set(ctx context.Context, key string, e *store.Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := rs.client.Set(ctx, keyPrefix+key, data, rs.ttl).Err(); err != nil {
		level.Error(rs.logger).Log("msg", "failed to set entry in redis", "key", key, "err", err)
		return err
	}
	return nil
}

// Delete removes key from Redis.
func (rs *RedisStore) Delete(ctx context.Context, key string) error {
	return rs.client.Del(ctx, keyPrefix+key).Err()
}
