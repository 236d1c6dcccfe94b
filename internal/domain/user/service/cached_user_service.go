package service

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"vidtube/internal/domain/user/model"
	"vidtube/pkg/cache"
	"vidtube/pkg/logger"

	"go.uber.org/zap"
)

// 缓存键常量
const (
	UserCacheKeyPrefix = "user:"
	UserCacheTTL       = time.Minute * 30
)

// CachedUserService 为 GetUser 加 redis 缓存，写操作后失效
type CachedUserService struct {
	UserService
	cache cache.CacheService
}

// NewCachedUserService 创建带缓存的用户服务
func NewCachedUserService(next UserService, cache cache.CacheService) UserService {
	return &CachedUserService{UserService: next, cache: cache}
}

func userCacheKey(id string) string {
	return UserCacheKeyPrefix + id
}

// GetUser 获取单个用户（带缓存）
func (s *CachedUserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	var cached model.User
	err := s.cache.Get(ctx, userCacheKey(id), &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		// 缓存失败不影响业务逻辑，只记录日志
		logger.Log.Warn("user cache read failed", zap.String("user_id", id), zap.Error(err))
	}

	user, err := s.UserService.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, userCacheKey(id), user, UserCacheTTL); err != nil {
		logger.Log.Warn("user cache write failed", zap.String("user_id", id), zap.Error(err))
	}
	return user, nil
}

// UpdateAccount 更新用户（带缓存失效）
func (s *CachedUserService) UpdateAccount(ctx context.Context, id string, in model.UpdateInput) (*model.User, error) {
	user, err := s.UserService.UpdateAccount(ctx, id, in)
	s.invalidate(ctx, id)
	return user, err
}

func (s *CachedUserService) ChangePassword(ctx context.Context, id string, in model.ChangePasswordInput) error {
	err := s.UserService.ChangePassword(ctx, id, in)
	s.invalidate(ctx, id)
	return err
}

func (s *CachedUserService) UpdateAvatar(ctx context.Context, id string, avatar *multipart.FileHeader) (*model.User, error) {
	user, err := s.UserService.UpdateAvatar(ctx, id, avatar)
	s.invalidate(ctx, id)
	return user, err
}

func (s *CachedUserService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, userCacheKey(id)); err != nil {
		logger.Log.Warn("user cache invalidation failed", zap.String("user_id", id), zap.Error(err))
	}
}
