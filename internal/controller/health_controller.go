package controller

import (
	"learning_dashboard_backend/internal/repository"
	"learning_dashboard_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	Store repository.Store
}

func NewHealthController(store repository.Store) *HealthController {
	return &HealthController{Store: store}
}

// @Summary 健康检查
// @Description 检查服务状态以及存储是否可读
// @Tags 系统
// @Produce json
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	// 检查存储
	counts, err := c.Store.Counts(ctx.Request.Context())
	if err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Store unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"store": "up",
		},
		"entities": counts,
	})
}
