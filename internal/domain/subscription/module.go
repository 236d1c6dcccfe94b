package subscription

import (
	"vidtube/internal/domain/subscription/handler"
	"vidtube/internal/domain/subscription/repository"
	"vidtube/internal/domain/subscription/service"
	"vidtube/internal/pkg/middleware"
	"vidtube/internal/pkg/registry"
)

// SubscriptionModule 订阅模块
type SubscriptionModule struct{}

func init() {
	registry.Register(&SubscriptionModule{})
}

func (m *SubscriptionModule) Name() string {
	return "subscription"
}

func (m *SubscriptionModule) Priority() int {
	return 30
}

func (m *SubscriptionModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewSubscriptionRepository(ctx.DB)
	h := handler.NewSubscriptionHandler(service.NewSubscriptionService(repo, ctx.Config.Pagination.MaxLimit))

	g := ctx.API.Group("/subscriptions")
	g.Use(middleware.AuthMiddleware(ctx.Config.JWT.Secret, ctx.Tokens))
	{
		g.POST("/subscribe/:channelId", h.Toggle)
		g.GET("/channelSubscription/:channelId", h.Subscribers)
		g.GET("/subscribedChannels/:subscriberId", h.Channels)
	}
	return nil
}
