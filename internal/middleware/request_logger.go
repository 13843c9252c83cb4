package middleware

import (
	"learning_dashboard_backend/internal/util"
	"learning_dashboard_backend/pkg/logger"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestID 透传或生成 X-Request-ID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(util.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(util.ContextRequestID, id)
		c.Header(util.HeaderRequestID, id)
		c.Next()
	}
}

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(util.ContextRequestID)),
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Log.Error("http_request", fields...)
		case status >= http.StatusBadRequest:
			logger.Log.Warn("http_request", fields...)
		default:
			logger.Log.Info("http_request", fields...)
		}
	}
}

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Log.Error("panic_recovered",
					zap.Any("panic", r),
					zap.String("request_id", c.GetString(util.ContextRequestID)),
					zap.ByteString("stack", debug.Stack()))
				util.InternalServerError(c, "Internal server error")
			}
		}()
		c.Next()
	}
}
