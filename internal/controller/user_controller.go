package controller

import (
	"learning_dashboard_backend/internal/model"
	"learning_dashboard_backend/internal/service"
	"learning_dashboard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// @Summary 获取用户
// @Tags 用户
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} model.User
// @Failure 404 {object} util.ErrorResponse
// @Router /api/user/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.GetUser(ctx.Request.Context(), id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// @Summary 按用户名获取用户
// @Tags 用户
// @Produce json
// @Param username path string true "用户名"
// @Success 200 {object} model.User
// @Failure 404 {object} util.ErrorResponse
// @Router /api/user/username/{username} [get]
func (c *UserController) GetUserByUsername(ctx *gin.Context) {
	user, err := c.UserService.GetUserByUsername(ctx.Request.Context(), ctx.Param("username"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// @Summary 创建用户
// @Tags 用户
// @Accept json
// @Produce json
// @Param user body service.CreateUserRequest true "用户信息"
// @Success 201 {object} model.User
// @Failure 400 {object} util.ErrorResponse
// @Router /api/users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req service.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.CreateUser(ctx.Request.Context(), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, user)
}

// @Summary 更新用户
// @Description 局部更新，未提供的字段保持不变
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Param user body model.UserUpdate true "要更新的字段"
// @Success 200 {object} model.User
// @Router /api/user/{id} [patch]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var upd model.UserUpdate
	if err := ctx.ShouldBindJSON(&upd); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateUser(ctx.Request.Context(), id, upd)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}
