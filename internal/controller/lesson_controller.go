package controller

import (
	"code_quest_backend/internal/service"
	"code_quest_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService *service.LessonService
}

func NewLessonController(lessonService *service.LessonService) *LessonController {
	return &LessonController{LessonService: lessonService}
}

// GetLesson godoc
// @Summary 关卡详情
// @Description 含完整的题目载荷
// @Tags 关卡
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "关卡ID"
// @Success 200 {object} util.Response{data=model.Lesson} "成功"
// @Failure 404 {object} util.Response "关卡不存在"
// @Router /api/lessons/{id} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	lesson, err := c.LessonService.GetLesson(id)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lesson)
}

// CreateLesson godoc
// @Summary 创建关卡
// @Description 题目载荷按 type 区分题型，未知类型直接拒绝
// @Tags 关卡管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Param body body service.LessonRequest true "关卡信息"
// @Success 201 {object} util.Response{data=model.Lesson} "创建成功"
// @Failure 409 {object} util.Response "序号已被占用"
// @Router /api/admin/courses/{courseId}/lessons [post]
func (c *LessonController) CreateLesson(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("courseId"))
	if courseID == 0 {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.LessonService.CreateLesson(courseID, &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound), errors.Is(err, util.ErrEnemyNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrOrderIndexTaken):
			util.Conflict(ctx, err.Error())
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Created(ctx, lesson)
}

// UpdateLesson godoc
// @Summary 更新关卡
// @Description 目标序号被占用时与占用者交换序号
// @Tags 关卡管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "关卡ID"
// @Param body body service.LessonRequest true "关卡信息"
// @Success 200 {object} util.Response{data=model.Lesson} "成功"
// @Router /api/admin/lessons/{id} [put]
func (c *LessonController) UpdateLesson(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.LessonService.UpdateLesson(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLessonNotFound), errors.Is(err, util.ErrEnemyNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, lesson)
}

// DeleteLesson godoc
// @Summary 删除关卡
// @Tags 关卡管理
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "关卡ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/lessons/{id} [delete]
func (c *LessonController) DeleteLesson(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.LessonService.DeleteLesson(id); err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}
