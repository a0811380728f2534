package controller

import (
	"code_quest_backend/internal/service"
	"code_quest_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type RankingController struct {
	RankingService *service.RankingService
}

func NewRankingController(rankingService *service.RankingService) *RankingController {
	return &RankingController{RankingService: rankingService}
}

// GetGlobalRanking godoc
// @Summary 全站排行榜
// @Description 每次现算的实时榜单，不读取持久化名次
// @Tags 排行
// @Produce  json
// @Success 200 {object} util.Response{data=[]service.RankEntry} "成功"
// @Router /api/ranking/global [get]
func (c *RankingController) GetGlobalRanking(ctx *gin.Context) {
	entries, err := c.RankingService.GetGlobalRanking()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// GetMyRanking godoc
// @Summary 我的名次
// @Description 同时返回定时任务写入的名次和实时名次
// @Tags 排行
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.MyRanking} "成功"
// @Router /api/ranking/me [get]
func (c *RankingController) GetMyRanking(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	ranking, err := c.RankingService.GetMyRanking(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, ranking)
}
