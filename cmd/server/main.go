package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"vidtube/docs"
	_ "vidtube/internal/domain/comment"
	_ "vidtube/internal/domain/common"
	_ "vidtube/internal/domain/like"
	_ "vidtube/internal/domain/subscription"
	_ "vidtube/internal/domain/tweet"
	_ "vidtube/internal/domain/user"
	_ "vidtube/internal/domain/video"
	"vidtube/internal/pkg/assembler"
	"vidtube/internal/pkg/config"
	"vidtube/internal/pkg/middleware"
	"vidtube/internal/pkg/registry"
	"vidtube/internal/pkg/uploader"
	"vidtube/internal/pkg/worker"
	"vidtube/pkg/cache"
	"vidtube/pkg/database"
	"vidtube/pkg/logger"
	"vidtube/pkg/metrics"
	"vidtube/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// @title vidtube API
// @version 1.0
// @description 视频分享平台后端
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.LoadConfig()
	cfg := &config.GlobalConfig

	if err := logger.InitLogger(cfg.App.Env, cfg.App.Debug); err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.InitMetrics()
	collector := metrics.GlobalCollector

	db, err := database.InitDatabase(cfg.Database, cfg.App.Env, collector)
	if err != nil {
		logger.Log.Fatal("failed to connect database", zap.Error(err))
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	rdb, err := database.InitRedis(cfg.Redis)
	if err != nil {
		logger.Log.Fatal("failed to connect redis", zap.Error(err))
	}
	defer rdb.Close()

	media, err := uploader.NewAliyunOSSUploader(cfg.OSS)
	if err != nil {
		logger.Log.Fatal("failed to init media store", zap.Error(err))
	}

	// 媒体清理池不跟随信号，Shutdown 结束后由 defer 的 Stop 排空主队列
	cleanup := worker.NewWorkerPool(media, worker.Options{
		WorkerNum:  cfg.Media.CleanupWorkers,
		BufferSize: cfg.Media.CleanupQueue,
		MaxRetry:   cfg.Media.MaxRetry,
		Metrics:    collector,
	})
	cleanup.Start(context.Background())
	defer cleanup.Stop()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.TraceMiddleware(),
		middleware.LoggerMiddleware(),
		middleware.MetricsMiddleware(collector),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.RateLimitMiddleware(middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.QPS), cfg.RateLimit.Burst)),
		middleware.TimeoutMiddleware(cfg.Server.RequestTimeout),
	)

	docs.SwaggerInfo.BasePath = "/api/v1"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	redisCache := cache.NewRedisCache(rdb, cfg.App.Env, collector)
	moduleCtx := &registry.ModuleContext{
		DB:        db,
		Redis:     rdb,
		Router:    router,
		API:       router.Group("/api/v1"),
		Config:    cfg,
		Assembler: assembler.New(db),
		Cache:     redisCache,
		Tokens:    security.NewTokenBlacklist(redisCache),
		Media:     media,
		Cleanup:   cleanup,
		Metrics:   collector,
	}
	if err := registry.InitModules(moduleCtx); err != nil {
		logger.Log.Fatal("failed to init modules", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Log.Info("server is running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// shutdown
	<-ctx.Done()
	logger.Log.Info("shutdown signal received, stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("server forced to shutdown", zap.Error(err))
	}
	logger.Log.Info("server exiting")
}
