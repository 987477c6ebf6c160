package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore 已注销Token黑名单，按 jti 存储，过期时间与Token剩余有效期一致
type RevocationStore struct {
	client *redis.Client
	prefix string
}

// NewRevocationStore 创建黑名单
func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client, prefix: "auth:revoked:"}
}

// Revoke 注销Token
func (s *RevocationStore) Revoke(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ID == "" {
		return ErrTokenInvalid
	}
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	// 已过期的Token无需记录
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, s.prefix+claims.ID, claims.UserID, ttl).Err()
}

// IsRevoked 检查Token是否已注销
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	err := s.client.Get(ctx, s.prefix+tokenID).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, err
	}
}
