package controller

import (
	"code_quest_backend/internal/model"
	"code_quest_backend/internal/service"
	"code_quest_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
	LessonService *service.LessonService
}

func NewCourseController(courseService *service.CourseService, lessonService *service.LessonService) *CourseController {
	return &CourseController{
		CourseService: courseService,
		LessonService: lessonService,
	}
}

// swagger:model CourseRequest
type CourseRequest struct {
	Title          string `json:"title" binding:"required,max=200"`
	Description    string `json:"description"`
	TotalLessons   int    `json:"totalLessons" binding:"min=0"`
	EstimatedHours int    `json:"estimatedHours" binding:"min=0"`
}

// ListCourses godoc
// @Summary 课程列表
// @Description 普通用户只返回已发布课程，管理员返回全部
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course} "成功"
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	role := model.RoleUser
	if claims := util.GetUserFromContext(ctx); claims != nil {
		role = claims.Role
	}

	courses, err := c.CourseService.ListCourses(role)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary 课程详情
// @Description 课程信息及按序号排列的关卡列表
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	course, err := c.CourseService.GetCourse(id)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	// 未发布课程仅管理员可见
	claims := util.GetUserFromContext(ctx)
	if !course.IsPublished && (claims == nil || claims.Role != model.RoleAdmin) {
		util.NotFound(ctx, util.ErrCourseNotFound.Error())
		return
	}

	lessons, err := c.LessonService.ListLessons(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"course":  course,
		"lessons": lessons,
	})
}

// CreateCourse godoc
// @Summary 创建课程
// @Description 新课程以未发布状态创建
// @Tags 课程管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param body body CourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course} "创建成功"
// @Failure 409 {object} util.Response "标题已被使用"
// @Router /api/admin/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course := &model.Course{
		Title:          req.Title,
		Description:    req.Description,
		TotalLessons:   req.TotalLessons,
		EstimatedHours: req.EstimatedHours,
	}
	if err := c.CourseService.CreateCourse(course); err != nil {
		if errors.Is(err, util.ErrTitleTaken) {
			util.Conflict(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary 更新课程
// @Description 部分更新，发布状态也从这里切换
// @Tags 课程管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param body body service.CourseUpdate true "更新字段"
// @Success 200 {object} util.Response{data=model.Course} "成功"
// @Failure 409 {object} util.Response "标题已被使用"
// @Router /api/admin/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var update service.CourseUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(id, &update)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrTitleTaken):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary 删除课程
// @Description 已发布课程禁止删除；删除时级联清理关卡与进度
// @Tags 课程管理
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response "成功"
// @Failure 409 {object} util.Response "课程已发布"
// @Router /api/admin/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.CourseService.DeleteCourse(id); err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrCoursePublished):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

// UploadTrophyImage godoc
// @Summary 上传课程奖杯图片
// @Tags 课程管理
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param file formData file true "图片文件"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/admin/courses/{id}/trophy [post]
func (c *CourseController) UploadTrophyImage(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	url, err := c.CourseService.UploadTrophyImage(id, file)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, gin.H{"trophyImageUrl": url})
}
