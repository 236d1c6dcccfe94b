package handler

import (
	"context"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"vidtube/internal/pkg/uploader"
	"vidtube/pkg/errs"
	"vidtube/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// maxConcurrentUploads 单次请求的并发上传数
const maxConcurrentUploads = 5

// Cleaner 异步删除不再引用的媒体
type Cleaner interface {
	Enqueue(urls ...string)
}

// UploadHandler 通用上传
type UploadHandler struct {
	media   uploader.MediaStore
	cleaner Cleaner
}

func NewUploadHandler(media uploader.MediaStore, cleaner Cleaner) *UploadHandler {
	return &UploadHandler{media: media, cleaner: cleaner}
}

// UploadFile 上传文件 (支持批量)
// @Summary 上传文件到 OSS (支持批量)
// @Tags common
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Files"
// @Success 200 {object} response.Response{data=[]string} "URLs"
// @Failure 502 {object} response.ErrorResponse
// @Router /upload [post]
func (h *UploadHandler) UploadFile(c *gin.Context) {
	// 解析 multipart form
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, errs.Validation("invalid form data", err.Error()))
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		response.Error(c, errs.Validation("no files uploaded", "files is required"))
		return
	}

	urls, err := h.UploadAll(c.Request.Context(), files)
	if err != nil {
		response.Error(c, errs.Dependency("upload failed", err))
		return
	}
	response.Success(c, urls, "Files uploaded successfully")
}

// UploadAll 并发上传并保持顺序；任一失败时其余已上传的对象进入清理队列
func (h *UploadHandler) UploadAll(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// 结果数组，预分配大小
	urls := make([]string, len(files))

	var wg sync.WaitGroup
	var errOnce sync.Once
	var uploadErr error

	// 限制并发数，避免过多协程
	sem := make(chan struct{}, maxConcurrentUploads)

	for i, file := range files {
		wg.Add(1)
		go func(index int, f *multipart.FileHeader) {
			defer wg.Done()

			// 获取信号量
			sem <- struct{}{}
			defer func() { <-sem }()

			// 如果已经有错误发生，直接返回
			if ctx.Err() != nil {
				return
			}

			obj, err := h.media.Put(ctx, f)
			if err != nil {
				errOnce.Do(func() {
					uploadErr = err
					cancel()
				})
				return
			}

			// 直接按索引赋值，保证顺序
			urls[index] = obj.URL
		}(i, file)
	}

	wg.Wait()

	if uploadErr != nil {
		h.cleaner.Enqueue(urls...)
		return nil, uploadErr
	}
	return urls, nil
}

// HealthHandler 存活检查
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewHealthHandler(db *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: rdb}
}

// Health godoc
// @Summary 健康检查
// @Tags common
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"status": "ok", "database": "up", "redis": "up"}
	code := http.StatusOK
	if h.db != nil {
		if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			status["database"] = "down"
			code = http.StatusServiceUnavailable
		}
	}
	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			status["redis"] = "down"
			code = http.StatusServiceUnavailable
		}
	}
	if code != http.StatusOK {
		status["status"] = "degraded"
	}
	c.JSON(code, status)
}
