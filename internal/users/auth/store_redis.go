// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/peerreview/journalhub/internal/platform/apperr"
)

// RedisTokenRepository implements VolatileTokenRepository on a key prefix,
// one instance per token kind (reset, verification).
type RedisTokenRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisTokenRepository(client *redis.Client, prefix string) *RedisTokenRepository {
	return &RedisTokenRepository{client: client, prefix: prefix}
}

func (repository *RedisTokenRepository) Set(context context.Context, token, userID string, ttl time.Duration) error {
	if err := repository.client.Set(context, repository.prefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_token_set_failed: %w", err)
	}
	return nil
}

// Get returns the user id the token was issued for. An absent or expired
// token is a NotFound, not an internal error.
func (repository *RedisTokenRepository) Get(context context.Context, token string) (string, error) {
	userID, err := repository.client.Get(context, repository.prefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Token is invalid or expired")
		}
		return "", fmt.Errorf("redis_token_get_failed: %w", err)
	}
	return userID, nil
}

func (repository *RedisTokenRepository) Delete(context context.Context, token string) error {
	if err := repository.client.Del(context, repository.prefix+token).Err(); err != nil {
		return fmt.Errorf("redis_token_delete_failed: %w", err)
	}
	return nil
}
