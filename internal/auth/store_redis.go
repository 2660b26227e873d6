// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/trackline/internal/platform/apperr"
	"github.com/taibuivan/trackline/internal/platform/constants"
	"github.com/taibuivan/trackline/internal/platform/sec"
)

// RedisTokenRepository implements [OneShotTokenRepository] using Redis.
// The prefix selects the token family (verification vs reset).
//
// Keys are [sec.HashToken] digests of the raw token, never the token itself:
// a leaked Redis snapshot must not contain replayable secrets.
type RedisTokenRepository struct {
	client *redis.Client
	prefix string
}

// key derives the storage key for a raw token.
func (repository *RedisTokenRepository) key(token string) string {
	return repository.prefix + sec.HashToken(token)
}

// NewVerifyTokenRepository creates the Redis store for invitation tokens.
func NewVerifyTokenRepository(client *redis.Client) *RedisTokenRepository {
	return &RedisTokenRepository{client: client, prefix: constants.RedisPrefixVerifyToken}
}

// NewResetTokenRepository creates the Redis store for password-reset tokens.
func NewResetTokenRepository(client *redis.Client) *RedisTokenRepository {
	return &RedisTokenRepository{client: client, prefix: constants.RedisPrefixResetToken}
}

/*
Set stores a token with its associated employeeID and TTL.

Parameters:
  - context: context.Context
  - token: string
  - employeeID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisTokenRepository) Set(context context.Context, token string, employeeID string, ttl time.Duration) error {

	// Set the token with TTL
	if err := repository.client.Set(context, repository.key(token), employeeID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_token_set_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Get retrieves the employeeID for a given token.

Description: Returns apperr.NotFound if the token is absent or expired.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - string: Original employee ID
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisTokenRepository) Get(context context.Context, token string) (string, error) {

	// Get the token from Redis
	employeeID, err := repository.client.Get(context, repository.key(token)).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Token is invalid or expired")
		}
		return "", fmt.Errorf("redis_token_get_failed: %w", err)
	}

	// Return the employeeID
	return employeeID, nil
}

/*
Delete removes the token from Redis.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Execution errors
*/
func (repository *RedisTokenRepository) Delete(context context.Context, token string) error {

	// Delete the token
	if err := repository.client.Del(context, repository.key(token)).Err(); err != nil {
		return fmt.Errorf("redis_token_delete_failed: %w", err)
	}

	// Return nil on success
	return nil
}
