package controller

import (
	"code_quest_backend/internal/model"
	"code_quest_backend/internal/service"
	"code_quest_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type EnemyController struct {
	EnemyService *service.EnemyService
}

func NewEnemyController(enemyService *service.EnemyService) *EnemyController {
	return &EnemyController{EnemyService: enemyService}
}

type EnemyRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// ListEnemies godoc
// @Summary 敌人列表
// @Tags 敌人
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Enemy} "成功"
// @Router /api/enemies [get]
func (c *EnemyController) ListEnemies(ctx *gin.Context) {
	enemies, err := c.EnemyService.ListEnemies()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, enemies)
}

// CreateEnemy godoc
// @Summary 创建敌人
// @Tags 敌人管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param body body EnemyRequest true "敌人信息"
// @Success 201 {object} util.Response{data=model.Enemy} "创建成功"
// @Router /api/admin/enemies [post]
func (c *EnemyController) CreateEnemy(ctx *gin.Context) {
	var req EnemyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enemy := &model.Enemy{Name: req.Name}
	if err := c.EnemyService.CreateEnemy(enemy); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, enemy)
}

// UpdateEnemy godoc
// @Summary 更新敌人
// @Tags 敌人管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "敌人ID"
// @Param body body EnemyRequest true "敌人信息"
// @Success 200 {object} util.Response{data=model.Enemy} "成功"
// @Router /api/admin/enemies/{id} [put]
func (c *EnemyController) UpdateEnemy(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req EnemyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enemy, err := c.EnemyService.UpdateEnemy(id, req.Name)
	if err != nil {
		if errors.Is(err, util.ErrEnemyNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, enemy)
}

// DeleteEnemy godoc
// @Summary 删除敌人
// @Description 引用该敌人的关卡槽位被置空
// @Tags 敌人管理
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "敌人ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/enemies/{id} [delete]
func (c *EnemyController) DeleteEnemy(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.EnemyService.DeleteEnemy(id); err != nil {
		if errors.Is(err, util.ErrEnemyNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

// UploadSpriteImage godoc
// @Summary 上传敌人贴图
// @Tags 敌人管理
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "敌人ID"
// @Param file formData file true "图片文件"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/admin/enemies/{id}/sprite [post]
func (c *EnemyController) UploadSpriteImage(ctx *gin.Context) {
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

	url, err := c.EnemyService.UploadSpriteImage(id, file)
	if err != nil {
		if errors.Is(err, util.ErrEnemyNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, gin.H{"spriteImageUrl": url})
}
