// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/trackline/internal/platform/constants"
	"github.com/taibuivan/trackline/internal/platform/sec"
)

/*
TestTokenRepository_Key verifies tokens are stored under their digest, not
their raw value, and that the two token families never collide.
*/
func TestTokenRepository_Key(t *testing.T) {
	verify := &RedisTokenRepository{prefix: constants.RedisPrefixVerifyToken}
	reset := &RedisTokenRepository{prefix: constants.RedisPrefixResetToken}

	token := "raw-one-shot-token"

	// 1. The raw token never appears in the key.
	assert.NotContains(t, verify.key(token), token)
	assert.Equal(t, constants.RedisPrefixVerifyToken+sec.HashToken(token), verify.key(token))

	// 2. Derivation is deterministic, so redemption finds the stored entry.
	assert.Equal(t, verify.key(token), verify.key(token))

	// 3. The same token in different families maps to different keys.
	assert.NotEqual(t, verify.key(token), reset.key(token))
}
