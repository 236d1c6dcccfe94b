package video

import (
	"vidtube/internal/domain/video/handler"
	"vidtube/internal/domain/video/repository"
	"vidtube/internal/domain/video/service"
	"vidtube/internal/pkg/middleware"
	"vidtube/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// VideoModule 视频模块
type VideoModule struct{}

func init() {
	registry.Register(&VideoModule{})
}

func (m *VideoModule) Name() string {
	return "video"
}

func (m *VideoModule) Priority() int {
	return 10
}

func (m *VideoModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewVideoRepository(ctx.Assembler)
	svc := service.NewVideoService(repo, ctx.Media, ctx.Cleanup, service.Options{
		DeletePolicy: ctx.Config.Media.DeletePolicy,
		MaxLimit:     ctx.Config.Pagination.MaxLimit,
	})
	h := handler.NewVideoHandler(svc)

	setupRoutes(ctx.API.Group("/videos"), h, ctx.Config.JWT.Secret, ctx.Tokens)
	return nil
}

func setupRoutes(g *gin.RouterGroup, h *handler.VideoHandler, secret string, tokens middleware.RevocationChecker) {
	public := g.Group("")
	public.Use(middleware.OptionalAuthMiddleware(secret, tokens))
	{
		public.GET("", h.ListVideos)
		public.GET("/:videoId", h.GetVideo)
	}

	auth := g.Group("")
	auth.Use(middleware.AuthMiddleware(secret, tokens))
	{
		auth.POST("", h.PublishVideo)
		auth.PATCH("/:videoId", h.UpdateVideo)
		auth.DELETE("/:videoId", h.DeleteVideo)
		auth.PATCH("/toggle/publish/:videoId", h.TogglePublish)
	}
}
