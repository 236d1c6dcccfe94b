package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"vidtube/pkg/metrics"
	"vidtube/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func init() {
	gin.SetMode(gin.TestMode)
}

func whoami(c *gin.Context) {
	c.String(http.StatusOK, CurrentUserID(c))
}

func token(t *testing.T) string {
	tok, _, err := utils.GenerateToken(testSecret, "user-1", "alice", time.Hour)
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/me", AuthMiddleware(testSecret, nil), whoami)

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, ""},
		{"garbage token", "Bearer abc", http.StatusUnauthorized, ""},
		{"valid token", "Bearer " + token(t), http.StatusOK, "user-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, tc.body, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"success":false`)
			}
		})
	}

	t.Run("cookie token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: token(t)})
		r.ServeHTTP(w, req)
		assert.Equal(t, "user-1", w.Body.String())
	})
}

func TestOptionalAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/feed", OptionalAuthMiddleware(testSecret, nil), whoami)

	t.Run("anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/feed", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("invalid token is treated as anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/feed", nil)
		req.Header.Set("Authorization", "Bearer nope")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("valid token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/feed", nil)
		req.Header.Set("Authorization", "Bearer "+token(t))
		r.ServeHTTP(w, req)
		assert.Equal(t, "user-1", w.Body.String())
	})
}

type revokedSet map[string]bool

func (s revokedSet) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return s[tokenID], nil
}

type brokenChecker struct{}

func (brokenChecker) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("connection reset")
}

func tokenID(t *testing.T, tok string) string {
	claims, err := utils.ParseToken(testSecret, tok)
	require.NoError(t, err)
	return claims.ID
}

func TestAuthMiddlewareRevocation(t *testing.T) {
	revoked := token(t)
	live := token(t)
	set := revokedSet{tokenID(t, revoked): true}

	serve := func(h gin.HandlerFunc, path, tok string) *httptest.ResponseRecorder {
		r := gin.New()
		r.GET(path, h, func(c *gin.Context) {
			id, exp := CurrentToken(c)
			c.String(http.StatusOK, CurrentUserID(c)+"|"+id+"|"+strconv.FormatBool(!exp.IsZero()))
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("logged out token is rejected", func(t *testing.T) {
		w := serve(AuthMiddleware(testSecret, set), "/me", revoked)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("other tokens still work", func(t *testing.T) {
		w := serve(AuthMiddleware(testSecret, set), "/me", live)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1|"+tokenID(t, live)+"|true", w.Body.String())
	})

	t.Run("optional auth treats it as anonymous", func(t *testing.T) {
		w := serve(OptionalAuthMiddleware(testSecret, set), "/feed", revoked)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "||false", w.Body.String())
	})

	t.Run("lookup failure lets the request through", func(t *testing.T) {
		w := serve(AuthMiddleware(testSecret, brokenChecker{}), "/me", live)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://app.vidtube.dev"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	request := func(origin string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", origin)
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("allowed origin", func(t *testing.T) {
		w := request("https://app.vidtube.dev")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://app.vidtube.dev", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unknown origin is not reflected", func(t *testing.T) {
		w := request("https://evil.example")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimitMiddleware(NewIPRateLimiter(1, 1)), func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestIPRateLimiterEviction(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	now := time.Now()
	l.now = func() time.Time { return now }
	l.GetLimiter("10.0.0.1")

	now = now.Add(time.Hour)
	l.GetLimiter("10.0.0.2")

	assert.Len(t, l.ips, 1)
	assert.Contains(t, l.ips, "10.0.0.2")
}

func TestTraceMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(TraceMiddleware(), LoggerMiddleware(), MetricsMiddleware(metrics.NewMetricsCollector(prometheus.NewRegistry())))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ctxTraceID)) })

	t.Run("propagates incoming id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Trace-ID", "trace-123")
		r.ServeHTTP(w, req)
		assert.Equal(t, "trace-123", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "trace-123", w.Body.String())
	})

	t.Run("generates an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
	})

	t.Run("unmatched route", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTimeoutMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/", TimeoutMiddleware(50*time.Millisecond), func(c *gin.Context) {
		deadline, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
