package controller

import (
	"learning_dashboard_backend/internal/service"
	"learning_dashboard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	CatalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalogService}
}

// @Summary 学科列表
// @Tags 学科
// @Produce json
// @Param category query string false "分类" Enums(core, programming, aptitude, languages)
// @Success 200 {array} model.Subject
// @Router /api/subjects [get]
func (c *CatalogController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.CatalogService.ListSubjects(ctx.Request.Context(), ctx.Query("category"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}

// @Summary 创建学科
// @Tags 学科
// @Accept json
// @Produce json
// @Param subject body service.SubjectRequest true "学科信息"
// @Success 201 {object} model.Subject
// @Router /api/subjects [post]
func (c *CatalogController) CreateSubject(ctx *gin.Context) {
	var req service.SubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject, err := c.CatalogService.CreateSubject(ctx.Request.Context(), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, subject)
}

// @Summary 学科下的课程
// @Tags 课程
// @Produce json
// @Param subjectId path int true "学科ID"
// @Success 200 {array} model.Course
// @Router /api/subjects/{subjectId}/courses [get]
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	subjectID, err := util.ParamID(ctx, "subjectId")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	courses, err := c.CatalogService.ListCourses(ctx.Request.Context(), subjectID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// @Summary 获取课程
// @Tags 课程
// @Produce json
// @Param id path int true "课程ID"
// @Success 200 {object} model.Course
// @Failure 404 {object} util.ErrorResponse
// @Router /api/courses/{id} [get]
func (c *CatalogController) GetCourse(ctx *gin.Context) {
	id, err := util.ParamID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CatalogService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary 创建课程
// @Tags 课程
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course body service.CourseRequest true "课程信息"
// @Success 201 {object} model.Course
// @Router /api/courses [post]
func (c *CatalogController) CreateCourse(ctx *gin.Context) {
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CatalogService.CreateCourse(ctx.Request.Context(), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, course)
}
