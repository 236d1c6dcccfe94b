package user

import (
	"time"

	"vidtube/internal/domain/user/handler"
	"vidtube/internal/domain/user/repository"
	"vidtube/internal/domain/user/service"
	"vidtube/internal/pkg/middleware"
	"vidtube/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// UserModule 用户模块
type UserModule struct{}

func init() {
	// 自动注册模块
	registry.Register(&UserModule{})
}

func (m *UserModule) Name() string {
	return "user"
}

func (m *UserModule) Priority() int {
	// 用户模块优先级最高，因为其他模块可能依赖它
	return 1
}

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	userRepo := repository.NewUserRepository(ctx.DB)
	userService := service.NewUserService(userRepo, ctx.Media, ctx.Cleanup, service.TokenConfig{
		Secret: ctx.Config.JWT.Secret,
		TTL:    time.Duration(ctx.Config.JWT.Expire) * time.Hour,
	})
	if ctx.Cache != nil {
		userService = service.NewCachedUserService(userService, ctx.Cache)
	}
	userHandler := handler.NewUserHandler(userService, ctx.Tokens, ctx.Config.App.Env == "prod")

	// 2. 路由注册
	setupRoutes(ctx.API.Group("/users"), userHandler, ctx.Config.JWT.Secret, ctx.Tokens)
	return nil
}

func setupRoutes(g *gin.RouterGroup, h *handler.UserHandler, secret string, tokens middleware.RevocationChecker) {
	// 公开路由
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)

	// 受保护的路由
	auth := g.Group("")
	auth.Use(middleware.AuthMiddleware(secret, tokens))
	{
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)
		auth.PATCH("/me", h.UpdateAccount)
		auth.POST("/change-password", h.ChangePassword)
		auth.PATCH("/avatar", h.UpdateAvatar)
	}

	g.GET("/:userId", h.GetUser)
}
