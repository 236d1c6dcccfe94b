package handler

import (
	"vidtube/internal/domain/tweet/model"
	"vidtube/internal/domain/tweet/service"
	"vidtube/internal/pkg/assembler"
	"vidtube/internal/pkg/middleware"
	"vidtube/pkg/errs"
	"vidtube/pkg/response"
	"vidtube/pkg/utils"

	"github.com/gin-gonic/gin"
)

// TweetHandler 推文处理器
type TweetHandler struct {
	service service.TweetService
}

func NewTweetHandler(service service.TweetService) *TweetHandler {
	return &TweetHandler{service: service}
}

// CreateTweet godoc
// @Summary 发布推文
// @Tags tweets
// @Security BearerAuth
// @Param body body model.ContentInput true "推文内容"
// @Success 201 {object} response.Response{data=model.Tweet}
// @Failure 400 {object} response.ErrorResponse
// @Router /tweets [post]
func (h *TweetHandler) CreateTweet(c *gin.Context) {
	var input model.ContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, errs.Validation("invalid request body", err.Error()))
		return
	}
	tweet, err := h.service.CreateTweet(c.Request.Context(), middleware.CurrentUserID(c), input.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tweet, "Tweet created successfully")
}

// ListUserTweets godoc
// @Summary 用户推文列表
// @Tags tweets
// @Param userId path string true "用户 ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=assembler.Page[model.TweetView]}
// @Router /tweets/user/{userId} [get]
func (h *TweetHandler) ListUserTweets(c *gin.Context) {
	ownerID, err := assembler.ParseID(c.Param("userId"), "userId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, errs.Validation("invalid query", err.Error()))
		return
	}
	page, err := h.service.ListUserTweets(c.Request.Context(), ownerID, middleware.CurrentUserID(c), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page, "Tweets fetched successfully")
}

// UpdateTweet godoc
// @Summary 修改推文
// @Tags tweets
// @Security BearerAuth
// @Param tweetId path string true "推文 ID"
// @Param body body model.ContentInput true "推文内容"
// @Success 200 {object} response.Response{data=model.Tweet}
// @Failure 403 {object} response.ErrorResponse
// @Router /tweets/{tweetId} [patch]
func (h *TweetHandler) UpdateTweet(c *gin.Context) {
	id, err := assembler.ParseID(c.Param("tweetId"), "tweetId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var input model.ContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, errs.Validation("invalid request body", err.Error()))
		return
	}
	tweet, err := h.service.UpdateTweet(c.Request.Context(), id, middleware.CurrentUserID(c), input.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tweet, "Tweet updated successfully")
}

// DeleteTweet godoc
// @Summary 删除推文
// @Tags tweets
// @Security BearerAuth
// @Param tweetId path string true "推文 ID"
// @Success 200 {object} response.Response{data=model.Tweet}
// @Failure 403 {object} response.ErrorResponse
// @Router /tweets/{tweetId} [delete]
func (h *TweetHandler) DeleteTweet(c *gin.Context) {
	id, err := assembler.ParseID(c.Param("tweetId"), "tweetId")
	if err != nil {
		response.Error(c, err)
		return
	}
	tweet, err := h.service.DeleteTweet(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tweet, "Tweet deleted successfully")
}
