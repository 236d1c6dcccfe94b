package response

import (
	"net/http"

	"vidtube/pkg/errs"
	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一成功响应结构
type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// ErrorResponse 统一失败响应结构
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
	Success    bool     `json:"success"`
}

// Success 200 成功响应
func Success(c *gin.Context, data interface{}, msg string) {
	JSON(c, http.StatusOK, data, msg)
}

// Created 201 成功响应
func Created(c *gin.Context, data interface{}, msg string) {
	JSON(c, http.StatusCreated, data, msg)
}

func JSON(c *gin.Context, status int, data interface{}, msg string) {
	c.JSON(status, Response{
		StatusCode: status,
		Data:       data,
		Message:    msg,
		Success:    status < http.StatusBadRequest,
	})
}

// Error 根据错误分类渲染失败响应
// Internal 错误不向客户端暴露原始信息
func Error(c *gin.Context, err error) {
	e := errs.As(err)
	status := errs.HTTPStatus(e.Kind)

	switch e.Kind {
	case errs.KindInternal, errs.KindDependency:
		logger.Log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("kind", e.Kind.String()),
			zap.Error(err),
		)
	}

	details := e.Details
	if details == nil {
		details = []string{}
	}
	c.JSON(status, ErrorResponse{
		StatusCode: status,
		Message:    e.Message,
		Errors:     details,
		Success:    false,
	})
}

// Abort 渲染失败响应并中断后续中间件
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
