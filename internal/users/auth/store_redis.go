// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yamdb/internal/platform/constants"
)

// # Attempt Store

// RedisAttemptStore implements AttemptStore with an expiring Redis counter.
type RedisAttemptStore struct {
	client redis.Cmdable
}

// NewAttemptStore creates a new Redis-backed AttemptStore.
func NewAttemptStore(client redis.Cmdable) *RedisAttemptStore {
	return &RedisAttemptStore{client: client}
}

func attemptKey(username string) string {
	return constants.RedisPrefixConfirmAttempts + username
}

/*
Count returns the number of failures recorded in the open window.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - int: 0 when no window is open
  - error: Connectivity errors
*/
func (store *RedisAttemptStore) Count(context context.Context, username string) (int, error) {
	count, err := store.client.Get(context, attemptKey(username)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis_attempt_count_failed: %w", err)
	}
	return count, nil
}

/*
Increment records one failure.

Description: INCR and EXPIRE NX run in one transaction, so the window is
opened by the first failure and never extended by later ones.

Parameters:
  - context: context.Context
  - username: string
  - window: time.Duration

Returns:
  - int: The failure count after this one
  - error: Connectivity errors
*/
func (store *RedisAttemptStore) Increment(context context.Context, username string, window time.Duration) (int, error) {
	key := attemptKey(username)

	var incr *redis.IntCmd
	_, err := store.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(context, key)
		pipe.ExpireNX(context, key, window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis_attempt_increment_failed: %w", err)
	}

	return int(incr.Val()), nil
}

// Reset deletes the counter after a successful exchange.
func (store *RedisAttemptStore) Reset(context context.Context, username string) error {
	if err := store.client.Del(context, attemptKey(username)).Err(); err != nil {
		return fmt.Errorf("redis_attempt_reset_failed: %w", err)
	}
	return nil
}
