package controller

import (
	"code_quest_backend/internal/model"
	"code_quest_backend/internal/service"
	"code_quest_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// CreateReport godoc
// @Summary 提交举报
// @Tags 举报
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param body body service.ReportRequest true "举报内容"
// @Success 201 {object} util.Response{data=model.Report} "创建成功"
// @Router /api/reports [post]
func (c *ReportController) CreateReport(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	report, err := c.ReportService.CreateReport(claims.UserID, &req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, report)
}

// ListOwnReports godoc
// @Summary 我的举报
// @Tags 举报
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Report} "成功"
// @Router /api/reports/my [get]
func (c *ReportController) ListOwnReports(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	reports, err := c.ReportService.ListOwnReports(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, reports)
}

// ListReports godoc
// @Summary 举报列表
// @Description 管理员视图，可按状态过滤
// @Tags 举报管理
// @Produce  json
// @Security ApiKeyAuth
// @Param status query string false "状态过滤" Enums(OPEN, RESOLVED, DISMISSED)
// @Param page query int false "页码" default(1)
// @Param pageSize query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/admin/reports [get]
func (c *ReportController) ListReports(ctx *gin.Context) {
	status := model.ReportStatus(ctx.Query("status"))
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "20"))

	reports, total, err := c.ReportService.ListReports(status, page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"reports": reports,
		"total":   total,
		"page":    page,
	})
}

// swagger:model CloseReportRequest
type CloseReportRequest struct {
	Status model.ReportStatus `json:"status" binding:"required,oneof=RESOLVED DISMISSED"`
}

// CloseReport godoc
// @Summary 关闭举报
// @Description 只能从 OPEN 状态关单，结单后不可再改
// @Tags 举报管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "举报ID"
// @Param body body CloseReportRequest true "结单状态"
// @Success 200 {object} util.Response{data=model.Report} "成功"
// @Failure 409 {object} util.Response "工单已关闭"
// @Router /api/admin/reports/{id}/close [put]
func (c *ReportController) CloseReport(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid report id")
		return
	}

	var req CloseReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	report, err := c.ReportService.CloseReport(claims.UserID, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrReportNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrReportClosed):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, report)
}
