package controller

import (
	"learning_dashboard_backend/internal/service"
	"learning_dashboard_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	AuthService     *service.AuthService
	SnapshotService *service.SnapshotService
}

func NewAdminController(authService *service.AuthService, snapshotService *service.SnapshotService) *AdminController {
	return &AdminController{
		AuthService:     authService,
		SnapshotService: snapshotService,
	}
}

// @Summary 管理员登录
// @Tags 管理
// @Accept json
// @Produce json
// @Param credentials body service.LoginRequest true "账号密码"
// @Success 200 {object} service.LoginResponse
// @Failure 401 {object} util.ErrorResponse
// @Router /api/admin/login [post]
func (c *AdminController) Login(ctx *gin.Context) {
	var req service.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.Login(ctx.Request.Context(), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary 导出存储快照
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Success 201 {object} service.SnapshotResult
// @Router /api/admin/snapshots [post]
func (c *AdminController) CreateSnapshot(ctx *gin.Context) {
	if c.SnapshotService == nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Snapshot storage not configured")
		return
	}

	result, err := c.SnapshotService.Export(ctx.Request.Context())
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// ListSnapshots 按名称升序
func (c *AdminController) ListSnapshots(ctx *gin.Context) {
	if c.SnapshotService == nil {
		util.Success(ctx, []service.SnapshotResult{})
		return
	}

	snapshots, err := c.SnapshotService.List(ctx.Request.Context())
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, snapshots)
}
