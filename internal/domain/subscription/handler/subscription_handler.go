package handler

import (
	"vidtube/internal/domain/subscription/service"
	"vidtube/internal/pkg/assembler"
	"vidtube/internal/pkg/middleware"
	"vidtube/pkg/errs"
	"vidtube/pkg/response"
	"vidtube/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SubscriptionHandler 订阅处理器
type SubscriptionHandler struct {
	service service.SubscriptionService
}

func NewSubscriptionHandler(service service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

// Toggle godoc
// @Summary 切换订阅
// @Tags subscriptions
// @Security BearerAuth
// @Param channelId path string true "频道（用户）ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /subscriptions/subscribe/{channelId} [post]
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	channelID, err := assembler.ParseID(c.Param("channelId"), "channelId")
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.Toggle(c.Request.Context(), middleware.CurrentUserID(c), channelID)
	if err != nil {
		response.Error(c, err)
		return
	}
	msg := "Unsubscribed successfully"
	if result.Subscribed {
		msg = "Subscribed successfully"
	}
	response.Success(c, result, msg)
}

// Subscribers godoc
// @Summary 频道的订阅者
// @Tags subscriptions
// @Security BearerAuth
// @Param channelId path string true "频道 ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response
// @Router /subscriptions/channelSubscription/{channelId} [get]
func (h *SubscriptionHandler) Subscribers(c *gin.Context) {
	channelID, err := assembler.ParseID(c.Param("channelId"), "channelId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, errs.Validation("invalid query", err.Error()))
		return
	}
	page, err := h.service.Subscribers(c.Request.Context(), channelID, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page, "Subscribers fetched successfully")
}

// Channels godoc
// @Summary 用户订阅的频道
// @Tags subscriptions
// @Security BearerAuth
// @Param subscriberId path string true "订阅者 ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response
// @Router /subscriptions/subscribedChannels/{subscriberId} [get]
func (h *SubscriptionHandler) Channels(c *gin.Context) {
	subscriberID, err := assembler.ParseID(c.Param("subscriberId"), "subscriberId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, errs.Validation("invalid query", err.Error()))
		return
	}
	page, err := h.service.Channels(c.Request.Context(), subscriberID, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page, "Subscribed channels fetched successfully")
}
