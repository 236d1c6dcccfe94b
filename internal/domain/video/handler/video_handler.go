package handler

import (
	"vidtube/internal/domain/video/model"
	"vidtube/internal/domain/video/service"
	"vidtube/internal/pkg/assembler"
	"vidtube/internal/pkg/middleware"
	"vidtube/pkg/errs"
	"vidtube/pkg/response"
	"vidtube/pkg/utils"

	"github.com/gin-gonic/gin"
)

// VideoHandler 视频处理器
type VideoHandler struct {
	service service.VideoService
}

func NewVideoHandler(service service.VideoService) *VideoHandler {
	return &VideoHandler{service: service}
}

// ListVideos godoc
// @Summary 视频列表
// @Tags videos
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Param query query string false "全文检索"
// @Param sortBy query string false "createdAt | duration | views"
// @Param sortType query string false "asc | desc"
// @Param userId query string false "作者 ID"
// @Success 200 {object} response.Response{data=assembler.Page[model.VideoView]}
// @Failure 400 {object} response.ErrorResponse
// @Router /videos [get]
func (h *VideoHandler) ListVideos(c *gin.Context) {
	var q utils.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, errs.Validation("invalid query", err.Error()))
		return
	}
	page, err := h.service.ListVideos(c.Request.Context(), q, middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page, "Videos fetched successfully")
}

// GetVideo godoc
// @Summary 视频详情
// @Tags videos
// @Param videoId path string true "视频 ID"
// @Success 200 {object} response.Response{data=model.VideoView}
// @Failure 404 {object} response.ErrorResponse
// @Router /videos/{videoId} [get]
func (h *VideoHandler) GetVideo(c *gin.Context) {
	id, err := assembler.ParseID(c.Param("videoId"), "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}
	video, err := h.service.GetVideo(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, video, "Video fetched successfully")
}

// PublishVideo godoc
// @Summary 发布视频
// @Tags videos
// @Security BearerAuth
// @Accept multipart/form-data
// @Param title formData string true "标题"
// @Param description formData string true "描述"
// @Param duration formData number false "时长（秒）"
// @Param videoFile formData file true "视频文件"
// @Param thumbnail formData file true "封面"
// @Success 201 {object} response.Response{data=model.Video}
// @Failure 400 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /videos [post]
func (h *VideoHandler) PublishVideo(c *gin.Context) {
	var input model.PublishInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, errs.Validation("invalid form data", err.Error()))
		return
	}
	videoFile, _ := c.FormFile("videoFile")
	thumbnail, _ := c.FormFile("thumbnail")

	video, err := h.service.PublishVideo(c.Request.Context(), middleware.CurrentUserID(c), input, videoFile, thumbnail)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, video, "Video uploaded successfully")
}

// UpdateVideo godoc
// @Summary 修改视频
// @Tags videos
// @Security BearerAuth
// @Accept multipart/form-data
// @Param videoId path string true "视频 ID"
// @Param title formData string false "标题"
// @Param description formData string false "描述"
// @Param thumbnail formData file false "封面"
// @Success 200 {object} response.Response{data=model.Video}
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /videos/{videoId} [patch]
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	id, err := assembler.ParseID(c.Param("videoId"), "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var input model.UpdateInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, errs.Validation("invalid form data", err.Error()))
		return
	}
	thumbnail, _ := c.FormFile("thumbnail")

	video, err := h.service.UpdateVideo(c.Request.Context(), id, middleware.CurrentUserID(c), input, thumbnail)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, video, "Video updated successfully")
}

// DeleteVideo godoc
// @Summary 删除视频
// @Tags videos
// @Security BearerAuth
// @Param videoId path string true "视频 ID"
// @Success 200 {object} response.Response{data=model.Video}
// @Failure 403 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /videos/{videoId} [delete]
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	id, err := assembler.ParseID(c.Param("videoId"), "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}
	video, err := h.service.DeleteVideo(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, video, "Video deleted successfully")
}

// TogglePublish godoc
// @Summary 切换发布状态
// @Tags videos
// @Security BearerAuth
// @Param videoId path string true "视频 ID"
// @Success 200 {object} response.Response{data=model.Video}
// @Router /videos/toggle/publish/{videoId} [patch]
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	id, err := assembler.ParseID(c.Param("videoId"), "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}
	video, err := h.service.TogglePublish(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, video, "Video publish status toggled successfully")
}
