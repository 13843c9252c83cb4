package controller

import (
	"learning_dashboard_backend/internal/service"
	"learning_dashboard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	RecommendationService *service.RecommendationService
}

func NewRecommendationController(recommendationService *service.RecommendationService) *RecommendationController {
	return &RecommendationController{RecommendationService: recommendationService}
}

// @Summary 当前有效的建议
// @Tags 推荐
// @Produce json
// @Param userId path int true "用户ID"
// @Success 200 {array} model.AiRecommendation
// @Router /api/users/{userId}/recommendations [get]
func (c *RecommendationController) ListRecommendations(ctx *gin.Context) {
	userID, err := util.ParamID(ctx, "userId")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	recs, err := c.RecommendationService.ListActive(ctx.Request.Context(), userID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, recs)
}

// @Summary 新建建议
// @Tags 推荐
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param recommendation body service.RecommendationRequest true "建议"
// @Success 201 {object} model.AiRecommendation
// @Router /api/recommendations [post]
func (c *RecommendationController) CreateRecommendation(ctx *gin.Context) {
	var req service.RecommendationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rec, err := c.RecommendationService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, rec)
}

func (c *RecommendationController) DeactivateRecommendation(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.RecommendationService.Deactivate(ctx.Request.Context(), id); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
