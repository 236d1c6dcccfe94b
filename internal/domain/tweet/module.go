package tweet

import (
	"vidtube/internal/domain/tweet/handler"
	"vidtube/internal/domain/tweet/repository"
	"vidtube/internal/domain/tweet/service"
	"vidtube/internal/pkg/middleware"
	"vidtube/internal/pkg/registry"
)

// TweetModule 推文模块
type TweetModule struct{}

func init() {
	registry.Register(&TweetModule{})
}

func (m *TweetModule) Name() string {
	return "tweet"
}

func (m *TweetModule) Priority() int {
	return 20
}

func (m *TweetModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewTweetRepository(ctx.Assembler)
	h := handler.NewTweetHandler(service.NewTweetService(repo, ctx.Config.Pagination.MaxLimit))
	secret := ctx.Config.JWT.Secret

	g := ctx.API.Group("/tweets")
	g.GET("/user/:userId", middleware.OptionalAuthMiddleware(secret, ctx.Tokens), h.ListUserTweets)

	auth := g.Group("")
	auth.Use(middleware.AuthMiddleware(secret, ctx.Tokens))
	{
		auth.POST("", h.CreateTweet)
		auth.PATCH("/:tweetId", h.UpdateTweet)
		auth.DELETE("/:tweetId", h.DeleteTweet)
	}
	return nil
}
