package like

import (
	"vidtube/internal/domain/like/handler"
	"vidtube/internal/domain/like/model"
	"vidtube/internal/domain/like/repository"
	"vidtube/internal/domain/like/service"
	"vidtube/internal/pkg/middleware"
	"vidtube/internal/pkg/registry"
)

// LikeModule 点赞模块
type LikeModule struct{}

func init() {
	registry.Register(&LikeModule{})
}

func (m *LikeModule) Name() string {
	return "like"
}

func (m *LikeModule) Priority() int {
	return 30
}

func (m *LikeModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewLikeRepository(ctx.Assembler)
	h := handler.NewLikeHandler(service.NewLikeService(repo, ctx.Config.Pagination.MaxLimit))

	g := ctx.API.Group("/likes")
	g.Use(middleware.AuthMiddleware(ctx.Config.JWT.Secret, ctx.Tokens))
	{
		g.POST("/toggle/v/:videoId", h.Toggle(model.TargetVideo))
		g.POST("/toggle/c/:commentId", h.Toggle(model.TargetComment))
		g.POST("/toggle/t/:tweetId", h.Toggle(model.TargetTweet))
		g.GET("/videos", h.LikedVideos)
	}
	return nil
}
