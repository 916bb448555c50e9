package jwt

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "foodgram:revoked_token:"

type (
	// TokenBlacklist records logged out token ids.
	TokenBlacklist interface {
		Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
		IsRevoked(ctx context.Context, tokenID string) (bool, error)
	}

	redisTokenBlacklist struct {
		rdb *redis.Client
	}
)

func NewRedisTokenBlacklist(rdb *redis.Client) TokenBlacklist {
	return &redisTokenBlacklist{rdb: rdb}
}

func (b *redisTokenBlacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return b.rdb.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err()
}

func (b *redisTokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := b.rdb.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
