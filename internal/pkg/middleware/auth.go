package middleware

import (
	"context"
	"strings"
	"time"

	"vidtube/pkg/errs"
	"vidtube/pkg/logger"
	"vidtube/pkg/response"
	"vidtube/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ctxUserID      = "userID"
	ctxUsername    = "username"
	ctxTokenID     = "tokenID"
	ctxTokenExpiry = "tokenExpiry"
)

// RevocationChecker 判断令牌是否已注销
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthMiddleware JWT认证中间件，未登录或令牌已注销返回 401；revoked 为 nil 时不查黑名单
func AuthMiddleware(secret string, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			response.Abort(c, errs.Unauthorized("Authorization header is required"))
			return
		}

		claims, err := utils.ParseToken(secret, tokenString)
		if err != nil || isRevoked(c, revoked, claims) {
			response.Abort(c, errs.Unauthorized("Invalid or expired token"))
			return
		}

		setPrincipal(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware 有合法 token 时识别用户，否则按匿名处理
func OptionalAuthMiddleware(secret string, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if claims, err := utils.ParseToken(secret, tokenString); err == nil && !isRevoked(c, revoked, claims) {
				setPrincipal(c, claims)
			}
		}
		c.Next()
	}
}

// CurrentUserID 当前请求的用户 ID，匿名时为空
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// CurrentToken 当前请求令牌的 jti 与过期时间
func CurrentToken(c *gin.Context) (string, time.Time) {
	return c.GetString(ctxTokenID), c.GetTime(ctxTokenExpiry)
}

// isRevoked 黑名单查询失败时放行，缓存故障不应让所有用户掉线
func isRevoked(c *gin.Context, revoked RevocationChecker, claims *utils.Claims) bool {
	if revoked == nil {
		return false
	}
	hit, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
	if err != nil {
		logger.Log.Warn("token blacklist lookup failed", zap.Error(err))
		return false
	}
	return hit
}

func setPrincipal(c *gin.Context, claims *utils.Claims) {
	// 将 userID 和 username 存入上下文
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxUsername, claims.Username)
	c.Set(ctxTokenID, claims.ID)
	if claims.ExpiresAt != nil {
		c.Set(ctxTokenExpiry, claims.ExpiresAt.Time)
	}
}

// bearerToken 检查格式 "Bearer <token>"，也接受 accessToken cookie
func bearerToken(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", false
		}
		return strings.TrimSpace(parts[1]), true
	}
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}
