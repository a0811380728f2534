package controller

import (
	"code_quest_backend/internal/service"
	"code_quest_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService    *service.UserService
	EconomyService *service.EconomyService
}

func NewUserController(userService *service.UserService, economyService *service.EconomyService) *UserController {
	return &UserController{
		UserService:    userService,
		EconomyService: economyService,
	}
}

// GetProfile godoc
// @Summary 获取当前用户资料
// @Description 身份信息、金币/积分/红心余额与当前装扮
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Profile} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.UserService.GetProfile(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, profile)
}

// ConsumeHeart godoc
// @Summary 消耗一颗红心
// @Description 开始关卡挑战前扣心，红心为 0 时返回冲突
// @Tags 经济
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 409 {object} util.Response "红心耗尽"
// @Router /api/user/consume-heart [post]
func (c *UserController) ConsumeHeart(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.EconomyService.ConsumeHeart(claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNoHearts):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"hearts":            user.Hearts,
		"lastHeartRecovery": user.LastHeartRecovery,
	})
}

// BuyHeart godoc
// @Summary 购买一颗红心
// @Description 花费固定价格的金币购买红心，满心或余额不足时返回冲突
// @Tags 经济
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 409 {object} util.Response "满心或金币不足"
// @Router /api/user/buy-heart [post]
func (c *UserController) BuyHeart(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.EconomyService.BuyHeart(claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrHeartsFull), errors.Is(err, util.ErrInsufficientCoins):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"hearts": user.Hearts,
		"coins":  user.Coins,
	})
}

// ListUsers godoc
// @Summary 用户列表
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	users, total, err := c.UserService.ListUsers(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  users,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// BlockUser godoc
// @Summary 封禁用户
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/users/{id}/block [put]
func (c *UserController) BlockUser(ctx *gin.Context) {
	c.setBlocked(ctx, true)
}

// UnblockUser godoc
// @Summary 解封用户
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/users/{id}/unblock [put]
func (c *UserController) UnblockUser(ctx *gin.Context) {
	c.setBlocked(ctx, false)
}

func (c *UserController) setBlocked(ctx *gin.Context, blocked bool) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.UserService.SetBlocked(id, blocked); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"blocked": blocked})
}
