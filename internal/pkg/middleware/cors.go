package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS 只对白名单中的 origin 回写跨域头，允许携带 cookie
func CORS(allowedOrigins []string) gin.HandlerFunc {
	c := cors.DefaultConfig()
	c.AllowOrigins = allowedOrigins
	c.AllowCredentials = true
	c.AddAllowHeaders("Authorization", "X-Trace-ID", "X-Request-ID")
	c.AddExposeHeaders("X-Trace-ID", "X-Request-ID")
	return cors.New(c)
}
