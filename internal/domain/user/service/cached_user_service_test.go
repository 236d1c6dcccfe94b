package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"vidtube/internal/domain/user/model"
	"vidtube/pkg/cache"
	basemodel "vidtube/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryCache 内存版 CacheService，只用于测试
type memoryCache struct {
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := c.data[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memoryCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := c.data[key]
	return ok, nil
}

func (c *memoryCache) InvalidatePattern(context.Context, string) error {
	c.data = map[string][]byte{}
	return nil
}

func TestCachedUserService_GetUser(t *testing.T) {
	inner, repo, _, _ := newTestService()
	mc := newMemoryCache()
	svc := NewCachedUserService(inner, mc)

	repo.On("GetByID", mock.Anything, "user-1").
		Return(&model.User{BaseModel: basemodel.BaseModel{ID: "user-1"}, Username: "alice", Password: "secret-hash"}, nil).Once()

	first, err := svc.GetUser(context.Background(), "user-1")
	require.NoError(t, err)
	second, err := svc.GetUser(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, "alice", first.Username)
	assert.Equal(t, "alice", second.Username)
	assert.Empty(t, second.Password, "password hash must not be cached")
	repo.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestCachedUserService_InvalidatesOnUpdate(t *testing.T) {
	inner, repo, _, _ := newTestService()
	mc := newMemoryCache()
	svc := NewCachedUserService(inner, mc)
	require.NoError(t, mc.Set(context.Background(), userCacheKey("user-1"), &model.User{Username: "alice"}, UserCacheTTL))

	repo.On("Update", mock.Anything, "user-1", mock.Anything).Return(&model.User{FullName: "Alice"}, nil)

	_, err := svc.UpdateAccount(context.Background(), "user-1", model.UpdateInput{FullName: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	ok, _ := mc.Exists(context.Background(), userCacheKey("user-1"))
	assert.False(t, ok)
}
