package controller

import (
	"learning_dashboard_backend/internal/service"
	"learning_dashboard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// @Summary 获取仪表盘数据
// @Description 学习天数、今日/每周时长、总体进度以及强弱项统计，每次请求重新计算
// @Tags 仪表盘
// @Produce json
// @Param userId path int true "用户ID"
// @Success 200 {object} model.DashboardStats
// @Router /api/dashboard/{userId} [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	userID, err := util.ParamID(ctx, "userId")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	stats, err := c.DashboardService.GetDashboardStats(ctx.Request.Context(), userID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
