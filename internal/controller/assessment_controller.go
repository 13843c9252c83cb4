package controller

import (
	"learning_dashboard_backend/internal/service"
	"learning_dashboard_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// @Summary 用户测评记录
// @Tags 测评
// @Produce json
// @Param userId path int true "用户ID"
// @Param subjectId query int false "按学科过滤"
// @Success 200 {array} model.Assessment
// @Router /api/users/{userId}/assessments [get]
func (c *AssessmentController) ListAssessments(ctx *gin.Context) {
	userID, err := util.ParamID(ctx, "userId")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var subjectID uint
	if raw := ctx.Query("subjectId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			util.BadRequest(ctx, "invalid subjectId: "+strconv.Quote(raw))
			return
		}
		subjectID = uint(id)
	}

	assessments, err := c.AssessmentService.ListAssessments(ctx.Request.Context(), userID, subjectID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, assessments)
}

// @Summary 提交测评
// @Tags 测评
// @Accept json
// @Produce json
// @Param assessment body service.AssessmentRequest true "测评结果"
// @Success 201 {object} model.Assessment
// @Router /api/assessments [post]
func (c *AssessmentController) CreateAssessment(ctx *gin.Context) {
	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assessment, err := c.AssessmentService.CreateAssessment(ctx.Request.Context(), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, assessment)
}
