package registry

import (
	"sort"

	"vidtube/internal/pkg/assembler"
	"vidtube/internal/pkg/config"
	"vidtube/internal/pkg/uploader"
	"vidtube/internal/pkg/worker"
	"vidtube/pkg/cache"
	"vidtube/pkg/metrics"
	"vidtube/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ModuleContext 模块初始化所需的上下文
type ModuleContext struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Router    *gin.Engine
	API       *gin.RouterGroup
	Config    *config.Config
	Assembler *assembler.Assembler
	Cache     cache.CacheService
	Tokens    *security.TokenBlacklist
	Media     uploader.MediaStore
	Cleanup   *worker.WorkerPool
	Metrics   *metrics.MetricsCollector
}

// Module 模块接口
type Module interface {
	// Name 返回模块名称
	Name() string

	// Init 初始化模块（依赖注入、路由注册等）
	Init(ctx *ModuleContext) error

	// Priority 返回初始化优先级（数字越小越先初始化）
	Priority() int
}

// moduleRegistry 全局模块注册表
var moduleRegistry = make(map[string]Module)

// Register 注册模块
func Register(module Module) {
	moduleRegistry[module.Name()] = module
}

// GetModules 获取所有已注册的模块
func GetModules() map[string]Module {
	return moduleRegistry
}

// Sorted 按优先级排序，同优先级按名称
func Sorted() []Module {
	modules := make([]Module, 0, len(moduleRegistry))
	for _, m := range moduleRegistry {
		modules = append(modules, m)
	}
	sort.Slice(modules, func(i, j int) bool {
		if modules[i].Priority() != modules[j].Priority() {
			return modules[i].Priority() < modules[j].Priority()
		}
		return modules[i].Name() < modules[j].Name()
	})
	return modules
}

// InitModules 按优先级初始化所有模块
func InitModules(ctx *ModuleContext) error {
	for _, module := range Sorted() {
		if err := module.Init(ctx); err != nil {
			return err
		}
	}
	return nil
}
