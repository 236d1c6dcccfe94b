package security

import (
	"context"
	"fmt"
	"time"

	"vidtube/pkg/cache"
)

const blacklistPrefix = "token_blacklist:"

// TokenBlacklist 已注销的令牌，以 jti 为键存入缓存，TTL 为令牌剩余有效期
type TokenBlacklist struct {
	cache cache.CacheService
}

// NewTokenBlacklist c 为 nil 时黑名单不生效
func NewTokenBlacklist(c cache.CacheService) *TokenBlacklist {
	return &TokenBlacklist{cache: c}
}

// Revoke 将令牌加入黑名单，已过期的令牌无需记录
func (b *TokenBlacklist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if b == nil || b.cache == nil || tokenID == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := b.cache.Set(ctx, blacklistPrefix+tokenID, true, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked 检查令牌是否在黑名单中
func (b *TokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if b == nil || b.cache == nil || tokenID == "" {
		return false, nil
	}
	return b.cache.Exists(ctx, blacklistPrefix+tokenID)
}
