package controller

import (
	"encoding/json"
	"learning_dashboard_backend/internal/service"
	"learning_dashboard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AIController struct {
	Generator service.ContentGenerator
}

func NewAIController(generator service.ContentGenerator) *AIController {
	return &AIController{Generator: generator}
}

type GenerateContentRequest struct {
	Subject   string   `json:"subject" binding:"required"`
	Topic     string   `json:"topic" binding:"required"`
	UserLevel string   `json:"userLevel" binding:"required"`
	WeakAreas []string `json:"weakAreas"`
}

type GenerateAssessmentRequest struct {
	Subject    string `json:"subject" binding:"required"`
	Difficulty string `json:"difficulty" binding:"required"`
	Count      int    `json:"count" binding:"omitempty,min=1,max=50"`
}

type AnalyzeWeaknessesRequest struct {
	AssessmentResults json.RawMessage `json:"assessmentResults"`
	UserHistory       json.RawMessage `json:"userHistory"`
}

type DailyRecommendationsRequest struct {
	UserProgress   json.RawMessage `json:"userProgress"`
	RecentActivity json.RawMessage `json:"recentActivity"`
}

type ProgrammingExerciseRequest struct {
	Language   string `json:"language" binding:"required"`
	Topic      string `json:"topic" binding:"required"`
	Difficulty string `json:"difficulty" binding:"required"`
}

// @Summary 生成个性化学习内容
// @Tags AI
// @Accept json
// @Produce json
// @Param request body GenerateContentRequest true "请求参数"
// @Success 200 {object} model.PersonalizedContent
// @Failure 500 {object} util.ErrorResponse
// @Router /api/ai/generate-content [post]
func (c *AIController) GenerateContent(ctx *gin.Context) {
	var req GenerateContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.WeakAreas == nil {
		req.WeakAreas = []string{}
	}

	content, err := c.Generator.GeneratePersonalizedContent(ctx.Request.Context(), req.Subject, req.Topic, req.UserLevel, req.WeakAreas)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, content)
}

// @Summary 生成测评题目
// @Description count 缺省为 5
// @Tags AI
// @Accept json
// @Produce json
// @Param request body GenerateAssessmentRequest true "请求参数"
// @Router /api/ai/generate-assessment [post]
func (c *AIController) GenerateAssessment(ctx *gin.Context) {
	var req GenerateAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Count == 0 {
		req.Count = service.DefaultQuestionCount
	}

	questions, err := c.Generator.GenerateAssessmentQuestions(ctx.Request.Context(), req.Subject, req.Difficulty, req.Count)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"questions": questions})
}

// @Summary 分析薄弱点
// @Tags AI
// @Accept json
// @Produce json
// @Param request body AnalyzeWeaknessesRequest true "测评结果与学习历史"
// @Success 200 {object} model.WeaknessAnalysis
// @Router /api/ai/analyze-weaknesses [post]
func (c *AIController) AnalyzeWeaknesses(ctx *gin.Context) {
	var req AnalyzeWeaknessesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	analysis, err := c.Generator.AnalyzeWeaknesses(ctx.Request.Context(), req.AssessmentResults, req.UserHistory)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, analysis)
}

// @Summary 每日学习建议
// @Tags AI
// @Accept json
// @Produce json
// @Param request body DailyRecommendationsRequest true "进度与近期活动"
// @Router /api/ai/daily-recommendations [post]
func (c *AIController) DailyRecommendations(ctx *gin.Context) {
	var req DailyRecommendationsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	recs, err := c.Generator.GenerateDailyRecommendations(ctx.Request.Context(), req.UserProgress, req.RecentActivity)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"recommendations": recs})
}

// @Summary 生成编程练习
// @Tags AI
// @Accept json
// @Produce json
// @Param request body ProgrammingExerciseRequest true "请求参数"
// @Success 200 {object} model.ProgrammingExercise
// @Router /api/ai/programming-exercise [post]
func (c *AIController) ProgrammingExercise(ctx *gin.Context) {
	var req ProgrammingExerciseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exercise, err := c.Generator.GenerateProgrammingExercise(ctx.Request.Context(), req.Language, req.Topic, req.Difficulty)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, exercise)
}
