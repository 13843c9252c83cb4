package controller

import (
	"learning_dashboard_backend/internal/service"
	"learning_dashboard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AchievementController struct {
	AchievementService *service.AchievementService
}

func NewAchievementController(achievementService *service.AchievementService) *AchievementController {
	return &AchievementController{AchievementService: achievementService}
}

// @Summary 用户成就
// @Tags 成就
// @Produce json
// @Param userId path int true "用户ID"
// @Success 200 {array} model.Achievement
// @Router /api/users/{userId}/achievements [get]
func (c *AchievementController) GetUserAchievements(ctx *gin.Context) {
	userID, err := util.ParamID(ctx, "userId")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	achievements, err := c.AchievementService.GetUserAchievements(ctx.Request.Context(), userID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, achievements)
}

// @Summary 颁发成就
// @Tags 成就
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param achievement body service.AchievementRequest true "成就"
// @Success 201 {object} model.Achievement
// @Router /api/achievements [post]
func (c *AchievementController) AwardAchievement(ctx *gin.Context) {
	var req service.AchievementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	achievement, err := c.AchievementService.Award(ctx.Request.Context(), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, achievement)
}
