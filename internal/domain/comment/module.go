package comment

import (
	"vidtube/internal/domain/comment/handler"
	"vidtube/internal/domain/comment/repository"
	"vidtube/internal/domain/comment/service"
	"vidtube/internal/pkg/middleware"
	"vidtube/internal/pkg/registry"
)

// CommentModule 评论模块
type CommentModule struct{}

func init() {
	registry.Register(&CommentModule{})
}

func (m *CommentModule) Name() string {
	return "comment"
}

func (m *CommentModule) Priority() int {
	return 20
}

func (m *CommentModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewCommentRepository(ctx.Assembler)
	h := handler.NewCommentHandler(service.NewCommentService(repo, ctx.Config.Pagination.MaxLimit))
	secret := ctx.Config.JWT.Secret

	g := ctx.API.Group("/comments")
	g.GET("/:videoId", middleware.OptionalAuthMiddleware(secret, ctx.Tokens), h.ListComments)

	auth := g.Group("")
	auth.Use(middleware.AuthMiddleware(secret, ctx.Tokens))
	{
		auth.POST("/:videoId", h.AddComment)
		auth.PATCH("/c/:commentId", h.UpdateComment)
		auth.DELETE("/c/:commentId", h.DeleteComment)
	}
	return nil
}
