package util

import (
	"errors"
	"learning_dashboard_backend/internal/apperr"
	"learning_dashboard_backend/internal/repository"
	"learning_dashboard_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse 所有失败响应的统一结构
type ErrorResponse struct {
	Message string `json:"message"`
}

// Success 成功时直接返回实体 JSON，不额外包一层
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Error(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Message: message})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.FullPath()),
		zap.Error(err))
	InternalServerError(c, "Internal server error")
}

// RespondError 按错误种类映射状态码并写出 {message}
func RespondError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case apperr.Internal:
			LogInternalError(c, err)
		case apperr.UpstreamFailure:
			logger.Log.Warn("Upstream failure",
				zap.String("path", c.FullPath()),
				zap.Error(err))
			Error(c, appErr.Kind.Status(), appErr.Error())
		default:
			Error(c, appErr.Kind.Status(), appErr.Error())
		}
		return
	}

	if errors.Is(err, repository.ErrNotFound) {
		NotFound(c, "Resource not found")
		return
	}
	LogInternalError(c, err)
}
