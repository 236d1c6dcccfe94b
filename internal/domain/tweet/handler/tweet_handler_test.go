package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vidtube/internal/domain/tweet/model"
	"vidtube/internal/pkg/assembler"
	"vidtube/pkg/errs"
	"vidtube/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockTweetService struct {
	mock.Mock
}

func (m *mockTweetService) CreateTweet(ctx context.Context, subjectID, content string) (*model.Tweet, error) {
	args := m.Called(ctx, subjectID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tweet), args.Error(1)
}

func (m *mockTweetService) ListUserTweets(ctx context.Context, ownerID, subjectID string, p utils.Pagination) (*assembler.Page[model.TweetView], error) {
	args := m.Called(ctx, ownerID, subjectID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assembler.Page[model.TweetView]), args.Error(1)
}

func (m *mockTweetService) UpdateTweet(ctx context.Context, id, subjectID, content string) (*model.Tweet, error) {
	args := m.Called(ctx, id, subjectID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tweet), args.Error(1)
}

func (m *mockTweetService) DeleteTweet(ctx context.Context, id, subjectID string) (*model.Tweet, error) {
	args := m.Called(ctx, id, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tweet), args.Error(1)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTweetHandler(t *testing.T) {
	svc := new(mockTweetService)
	h := NewTweetHandler(svc)
	r := gin.New()
	r.POST("/tweets", h.CreateTweet)
	r.PATCH("/tweets/:tweetId", h.UpdateTweet)
	r.GET("/tweets/user/:userId", h.ListUserTweets)

	t.Run("malformed tweet id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/tweets/xyz", strings.NewReader(`{"content":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed user id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tweets/user/xyz", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation error envelope", func(t *testing.T) {
		svc.On("CreateTweet", mock.Anything, "", "  ").Return(nil, errs.Validation("invalid input", "content is required")).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/tweets", strings.NewReader(`{"content":"  "}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"statusCode":400,"message":"invalid input","errors":["content is required"],"success":false}`, w.Body.String())
	})
}
