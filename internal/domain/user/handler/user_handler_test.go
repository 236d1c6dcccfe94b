package handler

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vidtube/internal/domain/user/model"
	"vidtube/internal/pkg/middleware"
	"vidtube/pkg/errs"
	"vidtube/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Register(ctx context.Context, in model.RegisterInput, avatar, cover *multipart.FileHeader) (*model.User, error) {
	args := m.Called(ctx, in, avatar, cover)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserService) Login(ctx context.Context, in model.LoginInput) (*model.LoginResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LoginResult), args.Error(1)
}

func (m *mockUserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserService) UpdateAccount(ctx context.Context, id string, in model.UpdateInput) (*model.User, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserService) ChangePassword(ctx context.Context, id string, in model.ChangePasswordInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *mockUserService) UpdateAvatar(ctx context.Context, id string, avatar *multipart.FileHeader) (*model.User, error) {
	args := m.Called(ctx, id, avatar)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func init() {
	gin.SetMode(gin.TestMode)
}

type mockRevoker struct {
	mock.Mock
}

func (m *mockRevoker) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return m.Called(ctx, tokenID, expiresAt).Error(0)
}

const testSecret = "0123456789abcdef0123456789abcdef"

func newRouter(svc *mockUserService) *gin.Engine {
	return newRouterWithRevoker(svc, nil)
}

func newRouterWithRevoker(svc *mockUserService, tokens TokenRevoker) *gin.Engine {
	h := NewUserHandler(svc, tokens, false)
	r := gin.New()
	r.GET("/users/:userId", h.GetUser)
	r.POST("/users/login", h.Login)
	r.POST("/users/logout", middleware.AuthMiddleware(testSecret, nil), h.Logout)
	return r
}

func TestGetUser(t *testing.T) {
	t.Run("malformed id", func(t *testing.T) {
		svc := new(mockUserService)
		w := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
		svc.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(mockUserService)
		id := "9b2f5b1e-4a57-4f43-9a8a-6a3b9b3b1c11"
		svc.On("GetUser", mock.Anything, id).Return(nil, errs.NotFound("user not found"))

		w := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/"+id, nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "user not found")
	})
}

func TestLoginSetsCookie(t *testing.T) {
	svc := new(mockUserService)
	svc.On("Login", mock.Anything, model.LoginInput{Username: "alice", Password: "wonderland"}).
		Return(&model.LoginResult{User: &model.User{Username: "alice"}, AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(`{"username":"alice","password":"wonderland"}`))
	req.Header.Set("Content-Type", "application/json")
	newRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "accessToken=tok")
	assert.Contains(t, w.Body.String(), `"accessToken":"tok"`)
}

func TestLogoutRevokesToken(t *testing.T) {
	tok, expireAt, err := utils.GenerateToken(testSecret, "user-1", "alice", time.Hour)
	require.NoError(t, err)
	claims, err := utils.ParseToken(testSecret, tok)
	require.NoError(t, err)

	logout := func(tokens TokenRevoker) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users/logout", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		newRouterWithRevoker(new(mockUserService), tokens).ServeHTTP(w, req)
		return w
	}

	t.Run("token id is blacklisted", func(t *testing.T) {
		tokens := new(mockRevoker)
		tokens.On("Revoke", mock.Anything, claims.ID, mock.MatchedBy(func(at time.Time) bool {
			return at.Unix() == expireAt.Unix()
		})).Return(nil)

		w := logout(tokens)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Set-Cookie"), "accessToken=;")
		tokens.AssertExpectations(t)
	})

	t.Run("blacklist failure keeps the session", func(t *testing.T) {
		tokens := new(mockRevoker)
		tokens.On("Revoke", mock.Anything, claims.ID, mock.Anything).Return(errors.New("connection reset"))

		w := logout(tokens)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Empty(t, w.Header().Get("Set-Cookie"))
	})
}
