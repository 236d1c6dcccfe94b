package handler

import (
	"context"
	"net/http"
	"time"

	"vidtube/internal/domain/user/model"
	"vidtube/internal/domain/user/service"
	"vidtube/internal/pkg/assembler"
	"vidtube/internal/pkg/middleware"
	"vidtube/pkg/errs"
	"vidtube/pkg/response"

	"github.com/gin-gonic/gin"
)

const accessTokenCookie = "accessToken"

// TokenRevoker 注销时作废令牌
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// UserHandler 用户处理器
type UserHandler struct {
	service      service.UserService
	tokens       TokenRevoker
	secureCookie bool
}

// NewUserHandler 创建处理器，tokens 为 nil 时退出只清除 cookie
func NewUserHandler(service service.UserService, tokens TokenRevoker, secureCookie bool) *UserHandler {
	return &UserHandler{service: service, tokens: tokens, secureCookie: secureCookie}
}

// Register godoc
// @Summary 注册
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param fullName formData string true "姓名"
// @Param email formData string true "邮箱"
// @Param username formData string true "用户名"
// @Param password formData string true "密码"
// @Param avatar formData file true "头像"
// @Param coverImage formData file false "封面"
// @Success 201 {object} response.Response{data=model.User}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var input model.RegisterInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, errs.Validation("invalid form data", err.Error()))
		return
	}
	avatar, _ := c.FormFile("avatar")
	cover, _ := c.FormFile("coverImage")

	user, err := h.service.Register(c.Request.Context(), input, avatar, cover)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user, "User registered successfully")
}

// Login godoc
// @Summary 登录
// @Tags users
// @Accept json
// @Produce json
// @Param body body model.LoginInput true "username 或 email + password"
// @Success 200 {object} response.Response{data=model.LoginResult}
// @Failure 401 {object} response.ErrorResponse
// @Router /users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var input model.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, errs.Validation("invalid request body", err.Error()))
		return
	}

	result, err := h.service.Login(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessTokenCookie, result.AccessToken, maxAge, "/", "", h.secureCookie, true)
	response.Success(c, result, "User logged in successfully")
}

// Logout godoc
// @Summary 退出登录
// @Tags users
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	if h.tokens != nil {
		tokenID, expiresAt := middleware.CurrentToken(c)
		if err := h.tokens.Revoke(c.Request.Context(), tokenID, expiresAt); err != nil {
			response.Error(c, errs.Internal(err))
			return
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessTokenCookie, "", -1, "/", "", h.secureCookie, true)
	response.Success(c, gin.H{}, "User logged out")
}

// Me godoc
// @Summary 当前用户
// @Tags users
// @Security BearerAuth
// @Success 200 {object} response.Response{data=model.User}
// @Router /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.service.GetUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user, "Current user fetched successfully")
}

// GetUser godoc
// @Summary 用户资料
// @Tags users
// @Param userId path string true "用户 ID"
// @Success 200 {object} response.Response{data=model.User}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{userId} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := assembler.ParseID(c.Param("userId"), "userId")
	if err != nil {
		response.Error(c, err)
		return
	}
	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user, "User fetched successfully")
}

// UpdateAccount godoc
// @Summary 修改账户信息
// @Tags users
// @Security BearerAuth
// @Accept json
// @Param body body model.UpdateInput true "姓名与邮箱"
// @Success 200 {object} response.Response{data=model.User}
// @Failure 409 {object} response.ErrorResponse
// @Router /users/me [patch]
func (h *UserHandler) UpdateAccount(c *gin.Context) {
	var input model.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, errs.Validation("invalid request body", err.Error()))
		return
	}
	user, err := h.service.UpdateAccount(c.Request.Context(), middleware.CurrentUserID(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user, "Account details updated successfully")
}

// ChangePassword godoc
// @Summary 修改密码
// @Tags users
// @Security BearerAuth
// @Accept json
// @Param body body model.ChangePasswordInput true "旧密码与新密码"
// @Success 200 {object} response.Response
// @Router /users/change-password [post]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var input model.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, errs.Validation("invalid request body", err.Error()))
		return
	}
	if err := h.service.ChangePassword(c.Request.Context(), middleware.CurrentUserID(c), input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{}, "Password changed successfully")
}

// UpdateAvatar godoc
// @Summary 更换头像
// @Tags users
// @Security BearerAuth
// @Accept multipart/form-data
// @Param avatar formData file true "头像"
// @Success 200 {object} response.Response{data=model.User}
// @Failure 502 {object} response.ErrorResponse
// @Router /users/avatar [patch]
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	avatar, _ := c.FormFile("avatar")
	user, err := h.service.UpdateAvatar(c.Request.Context(), middleware.CurrentUserID(c), avatar)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user, "Avatar updated successfully")
}
