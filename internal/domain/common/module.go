package common

import (
	commonHandler "vidtube/internal/pkg/common"
	"vidtube/internal/pkg/middleware"
	"vidtube/internal/pkg/registry"
)

// CommonModule 通用功能模块
type CommonModule struct{}

func init() {
	registry.Register(&CommonModule{})
}

func (m *CommonModule) Name() string {
	return "common"
}

func (m *CommonModule) Priority() int {
	return 100 // 最后初始化
}

func (m *CommonModule) Init(ctx *registry.ModuleContext) error {
	upload := commonHandler.NewUploadHandler(ctx.Media, ctx.Cleanup)
	health := commonHandler.NewHealthHandler(ctx.DB, ctx.Redis)

	// 文件上传接口
	ctx.API.POST("/upload", middleware.AuthMiddleware(ctx.Config.JWT.Secret, ctx.Tokens), upload.UploadFile)
	ctx.Router.GET("/health", health.Health)
	return nil
}
