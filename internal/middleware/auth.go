package middleware

import (
	"learning_dashboard_backend/internal/config"
	"learning_dashboard_backend/internal/util"
	"learning_dashboard_backend/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminMiddleware 校验管理员令牌；admin.enabled 为 false 时直接放行
func AdminMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Admin.Enabled {
			c.Next()
			return
		}

		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			logger.Log.Debug("JWT解析错误", zap.Error(err))
			util.Unauthorized(c)
			return
		}

		c.Set(util.ContextAdminKey, claims)
		c.Next()
	}
}
