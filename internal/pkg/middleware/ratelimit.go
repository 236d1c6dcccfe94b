package middleware

import (
	"net/http"
	"sync"
	"time"

	"vidtube/pkg/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter 存储每个IP的限流器
type IPRateLimiter struct {
	ips map[string]*visitor
	mu  sync.Mutex
	r   rate.Limit
	b   int
	ttl time.Duration
	now func() time.Time
}

// NewIPRateLimiter 创建一个新的IP限流器
// r: 每秒允许的请求数 (QPS)
// b: 桶的大小 (Burst)
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips: make(map[string]*visitor),
		r:   r,
		b:   b,
		ttl: 10 * time.Minute,
		now: time.Now,
	}
}

// GetLimiter 获取指定IP的限流器，顺带清理长时间未出现的IP
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	v, exists := i.ips[ip]
	if !exists {
		i.evict(now)
		v = &visitor{limiter: rate.NewLimiter(i.r, i.b)}
		i.ips[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

func (i *IPRateLimiter) evict(now time.Time) {
	for ip, v := range i.ips {
		if now.Sub(v.lastSeen) > i.ttl {
			delete(i.ips, ip)
		}
	}
}

// RateLimitMiddleware 限流中间件
func RateLimitMiddleware(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.ErrorResponse{
				StatusCode: http.StatusTooManyRequests,
				Message:    "Too many requests",
				Errors:     []string{},
				Success:    false,
			})
			return
		}
		c.Next()
	}
}
