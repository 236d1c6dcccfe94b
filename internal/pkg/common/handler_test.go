package handler

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"vidtube/internal/pkg/uploader"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	inFlight atomic.Int32
	peak     atomic.Int32
	fail     string
}

func (s *fakeStore) Put(_ context.Context, f *multipart.FileHeader) (uploader.MediaObject, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if f.Filename == s.fail {
		return uploader.MediaObject{}, errors.New("put failed")
	}
	return uploader.MediaObject{URL: "https://cdn/" + f.Filename}, nil
}

func (s *fakeStore) Delete(context.Context, string) error { return nil }

type fakeCleaner struct {
	mu   sync.Mutex
	urls []string
}

func (c *fakeCleaner) Enqueue(urls ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, u := range urls {
		if u != "" {
			c.urls = append(c.urls, u)
		}
	}
}

func headers(n int) []*multipart.FileHeader {
	files := make([]*multipart.FileHeader, n)
	for i := range files {
		files[i] = &multipart.FileHeader{Filename: fmt.Sprintf("f%02d.png", i)}
	}
	return files
}

func TestUploadAll(t *testing.T) {
	t.Run("keeps order and bounds concurrency", func(t *testing.T) {
		store := &fakeStore{}
		h := NewUploadHandler(store, &fakeCleaner{})

		urls, err := h.UploadAll(context.Background(), headers(12))

		require.NoError(t, err)
		require.Len(t, urls, 12)
		for i, u := range urls {
			assert.Equal(t, fmt.Sprintf("https://cdn/f%02d.png", i), u)
		}
		assert.LessOrEqual(t, store.peak.Load(), int32(maxConcurrentUploads))
	})

	t.Run("failure cleans up the rest", func(t *testing.T) {
		store := &fakeStore{fail: "f01.png"}
		cleaner := &fakeCleaner{}
		h := NewUploadHandler(store, cleaner)

		urls, err := h.UploadAll(context.Background(), headers(3))

		assert.Error(t, err)
		assert.Nil(t, urls)
		assert.NotContains(t, cleaner.urls, "https://cdn/f01.png")
		for _, u := range cleaner.urls {
			assert.Contains(t, []string{"https://cdn/f00.png", "https://cdn/f02.png"}, u)
		}
	})
}

func TestUploadFile_NoFiles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/upload", NewUploadHandler(&fakeStore{}, &fakeCleaner{}).UploadFile)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestHealth_NoBackends(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", NewHealthHandler(nil, nil).Health)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
