package controller

import (
	"code_quest_backend/internal/service"
	"code_quest_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// swagger:model CourseProgressRequest
type CourseProgressRequest struct {
	CourseID                 uint `json:"courseId" binding:"required"`
	CompletedLevelOrderIndex int  `json:"completedLevelOrderIndex" binding:"min=0"`
}

// UpdateCourseProgress godoc
// @Summary 更新课程进度
// @Description completedLevelOrderIndex 为已完成的最高关卡序号，只增不减
// @Tags 进度
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param body body CourseProgressRequest true "进度信息"
// @Success 200 {object} util.Response{data=model.UserCourseProgress} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/progress/update [put]
func (c *ProgressController) UpdateCourseProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CourseProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.UpdateCourseProgress(claims.UserID, req.CourseID, req.CompletedLevelOrderIndex)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, progress)
}

// RecordLessonProgress godoc
// @Summary 记录关卡成绩
// @Description 星级/积分取最大、用时取最小，各指标独立合并；
// @Description 金币和积分奖励按与历史最好成绩的差额结算
// @Tags 进度
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param body body service.LessonSubmission true "成绩提交"
// @Success 200 {object} util.Response{data=service.LessonProgressResult} "成功"
// @Failure 404 {object} util.Response "关卡不存在"
// @Router /api/lesson-progress/record [put]
func (c *ProgressController) RecordLessonProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var sub service.LessonSubmission
	if err := ctx.ShouldBindJSON(&sub); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ProgressService.RecordLessonProgress(claims.UserID, &sub)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrLessonNotInCourse):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// GetCompletedLessons godoc
// @Summary 查询课程已完成关数
// @Description 没有进度记录时返回 0
// @Tags 进度
// @Produce  json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/progress/course/{courseId} [get]
func (c *ProgressController) GetCompletedLessons(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.Param("courseId"))
	if courseID == 0 {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	completed, err := c.ProgressService.GetCompletedLessons(claims.UserID, courseID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"completedLessons": completed})
}

// GetProgressOverview godoc
// @Summary 用户全部课程进度
// @Tags 进度
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.UserCourseProgress} "成功"
// @Router /api/progress [get]
func (c *ProgressController) GetProgressOverview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progresses, err := c.ProgressService.GetCourseProgressOverview(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progresses)
}

// GetLessonProgressForCourse godoc
// @Summary 课程内每个关卡的最好成绩
// @Tags 进度
// @Produce  json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.UserLessonProgress} "成功"
// @Router /api/progress/course/{courseId}/lessons [get]
func (c *ProgressController) GetLessonProgressForCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.Param("courseId"))
	if courseID == 0 {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	progresses, err := c.ProgressService.GetLessonProgressForCourse(claims.UserID, courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progresses)
}
