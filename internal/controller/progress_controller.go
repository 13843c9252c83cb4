package controller

import (
	"learning_dashboard_backend/internal/model"
	"learning_dashboard_backend/internal/service"
	"learning_dashboard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// @Summary 用户全部学科进度
// @Tags 学习进度
// @Produce json
// @Param userId path int true "用户ID"
// @Success 200 {array} model.UserProgress
// @Router /api/users/{userId}/progress [get]
func (c *ProgressController) ListProgress(ctx *gin.Context) {
	userID, err := util.ParamID(ctx, "userId")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.ListProgress(ctx.Request.Context(), userID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// @Summary 用户某学科进度
// @Description 没有记录时返回 null
// @Tags 学习进度
// @Produce json
// @Param userId path int true "用户ID"
// @Param subjectId path int true "学科ID"
// @Success 200 {object} model.UserProgress
// @Router /api/users/{userId}/progress/subjects/{subjectId} [get]
func (c *ProgressController) GetProgressBySubject(ctx *gin.Context) {
	userID, subjectID, ok := userSubjectParams(ctx)
	if !ok {
		return
	}

	progress, err := c.ProgressService.GetProgressBySubject(ctx.Request.Context(), userID, subjectID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// @Summary 新建或更新进度
// @Description 按 (userId, subjectId) 合并
// @Tags 学习进度
// @Accept json
// @Produce json
// @Param progress body model.ProgressInput true "进度"
// @Success 201 {object} model.UserProgress
// @Router /api/progress [post]
func (c *ProgressController) UpsertProgress(ctx *gin.Context) {
	var in model.ProgressInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.Upsert(ctx.Request.Context(), in)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, progress)
}

// UpdateStrength 记录不存在时同样返回 204
func (c *ProgressController) UpdateStrength(ctx *gin.Context) {
	userID, subjectID, ok := userSubjectParams(ctx)
	if !ok {
		return
	}

	var req service.StrengthRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ProgressService.UpdateStrength(ctx.Request.Context(), userID, subjectID, req); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

func userSubjectParams(ctx *gin.Context) (uint, uint, bool) {
	userID, err := util.ParamID(ctx, "userId")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return 0, 0, false
	}
	subjectID, err := util.ParamID(ctx, "subjectId")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return 0, 0, false
	}
	return userID, subjectID, true
}
