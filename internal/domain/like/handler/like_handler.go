package handler

import (
	"vidtube/internal/domain/like/model"
	"vidtube/internal/domain/like/service"
	"vidtube/internal/pkg/assembler"
	"vidtube/internal/pkg/middleware"
	"vidtube/pkg/errs"
	"vidtube/pkg/response"
	"vidtube/pkg/utils"

	"github.com/gin-gonic/gin"
)

// LikeHandler 点赞处理器
type LikeHandler struct {
	service service.LikeService
}

func NewLikeHandler(service service.LikeService) *LikeHandler {
	return &LikeHandler{service: service}
}

// Toggle 返回处理指定资源点赞切换的 handler
// @Summary 切换点赞
// @Tags likes
// @Security BearerAuth
// @Param videoId path string true "视频 / 评论 / 推文 ID"
// @Success 200 {object} response.Response{data=model.ToggleResult}
// @Failure 404 {object} response.ErrorResponse
// @Router /likes/toggle/v/{videoId} [post]
// @Router /likes/toggle/c/{commentId} [post]
// @Router /likes/toggle/t/{tweetId} [post]
func (h *LikeHandler) Toggle(target model.Target) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := assembler.ParseID(c.Param(target.Param), target.Param)
		if err != nil {
			response.Error(c, err)
			return
		}
		result, err := h.service.Toggle(c.Request.Context(), target, id, middleware.CurrentUserID(c))
		if err != nil {
			response.Error(c, err)
			return
		}
		msg := "Like removed successfully"
		if result.IsLiked {
			msg = "Like added successfully"
		}
		response.Success(c, result, msg)
	}
}

// LikedVideos godoc
// @Summary 点赞过的视频
// @Tags likes
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response
// @Router /likes/videos [get]
func (h *LikeHandler) LikedVideos(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, errs.Validation("invalid query", err.Error()))
		return
	}
	page, err := h.service.LikedVideos(c.Request.Context(), middleware.CurrentUserID(c), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page, "Liked videos fetched successfully")
}
