package handler

import (
	"vidtube/internal/domain/comment/model"
	"vidtube/internal/domain/comment/service"
	"vidtube/internal/pkg/assembler"
	"vidtube/internal/pkg/middleware"
	"vidtube/pkg/errs"
	"vidtube/pkg/response"
	"vidtube/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CommentHandler 评论处理器
type CommentHandler struct {
	service service.CommentService
}

func NewCommentHandler(service service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// ListComments godoc
// @Summary 视频评论列表
// @Tags comments
// @Param videoId path string true "视频 ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=assembler.Page[model.CommentView]}
// @Failure 404 {object} response.ErrorResponse
// @Router /comments/{videoId} [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	videoID, err := assembler.ParseID(c.Param("videoId"), "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, errs.Validation("invalid query", err.Error()))
		return
	}
	page, err := h.service.ListComments(c.Request.Context(), videoID, middleware.CurrentUserID(c), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page, "Comments fetched successfully")
}

// AddComment godoc
// @Summary 发表评论
// @Tags comments
// @Security BearerAuth
// @Param videoId path string true "视频 ID"
// @Param body body model.ContentInput true "评论内容"
// @Success 201 {object} response.Response{data=model.Comment}
// @Failure 400 {object} response.ErrorResponse
// @Router /comments/{videoId} [post]
func (h *CommentHandler) AddComment(c *gin.Context) {
	videoID, err := assembler.ParseID(c.Param("videoId"), "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var input model.ContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, errs.Validation("invalid request body", err.Error()))
		return
	}
	comment, err := h.service.AddComment(c.Request.Context(), videoID, middleware.CurrentUserID(c), input.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, comment, "Comment added successfully")
}

// UpdateComment godoc
// @Summary 修改评论
// @Tags comments
// @Security BearerAuth
// @Param commentId path string true "评论 ID"
// @Param body body model.ContentInput true "评论内容"
// @Success 200 {object} response.Response{data=model.Comment}
// @Failure 403 {object} response.ErrorResponse
// @Router /comments/c/{commentId} [patch]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	id, err := assembler.ParseID(c.Param("commentId"), "commentId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var input model.ContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, errs.Validation("invalid request body", err.Error()))
		return
	}
	comment, err := h.service.UpdateComment(c.Request.Context(), id, middleware.CurrentUserID(c), input.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment, "Comment updated successfully")
}

// DeleteComment godoc
// @Summary 删除评论
// @Tags comments
// @Security BearerAuth
// @Param commentId path string true "评论 ID"
// @Success 200 {object} response.Response{data=model.Comment}
// @Failure 403 {object} response.ErrorResponse
// @Router /comments/c/{commentId} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := assembler.ParseID(c.Param("commentId"), "commentId")
	if err != nil {
		response.Error(c, err)
		return
	}
	comment, err := h.service.DeleteComment(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment, "Comment deleted successfully")
}
