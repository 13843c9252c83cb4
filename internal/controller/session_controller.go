package controller

import (
	"learning_dashboard_backend/internal/service"
	"learning_dashboard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	SessionService *service.SessionService
}

func NewSessionController(sessionService *service.SessionService) *SessionController {
	return &SessionController{SessionService: sessionService}
}

// @Summary 用户学习会话
// @Tags 学习会话
// @Produce json
// @Param userId path int true "用户ID"
// @Success 200 {array} model.StudySession
// @Router /api/users/{userId}/sessions [get]
func (c *SessionController) ListSessions(ctx *gin.Context) {
	userID, err := util.ParamID(ctx, "userId")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sessions, err := c.SessionService.ListSessions(ctx.Request.Context(), userID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}

// @Summary 进行中的会话
// @Description 没有时返回 null
// @Tags 学习会话
// @Produce json
// @Param userId path int true "用户ID"
// @Success 200 {object} model.StudySession
// @Router /api/users/{userId}/sessions/active [get]
func (c *SessionController) GetActiveSession(ctx *gin.Context) {
	userID, err := util.ParamID(ctx, "userId")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.SessionService.GetActiveSession(ctx.Request.Context(), userID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// @Summary 开始学习会话
// @Tags 学习会话
// @Accept json
// @Produce json
// @Param session body service.SessionRequest true "会话"
// @Success 201 {object} model.StudySession
// @Router /api/sessions [post]
func (c *SessionController) CreateSession(ctx *gin.Context) {
	var req service.SessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.SessionService.StartSession(ctx.Request.Context(), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, session)
}

// @Summary 更新会话状态
// @Description 切换到 completed 时记录完成时间
// @Tags 学习会话
// @Accept json
// @Produce json
// @Param id path int true "会话ID"
// @Param status body service.SessionStatusRequest true "状态"
// @Success 200 {object} model.StudySession
// @Failure 404 {object} util.ErrorResponse
// @Router /api/sessions/{id} [patch]
func (c *SessionController) UpdateSession(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var req service.SessionStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.SessionService.UpdateStatus(ctx.Request.Context(), id, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, session)
}
