package controller

import (
	"code_quest_backend/internal/model"
	"code_quest_backend/internal/service"
	"code_quest_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type ShopController struct {
	ShopService *service.ShopService
}

func NewShopController(shopService *service.ShopService) *ShopController {
	return &ShopController{ShopService: shopService}
}

// GetCatalog godoc
// @Summary 商店目录
// @Tags 商店
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Equipment} "成功"
// @Router /api/shop/catalog [get]
func (c *ShopController) GetCatalog(ctx *gin.Context) {
	items, err := c.ShopService.Catalog()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// BuyEquipment godoc
// @Summary 购买装备
// @Description 重复购买或金币不足返回冲突
// @Tags 商店
// @Produce  json
// @Security ApiKeyAuth
// @Param equipmentId path int true "装备ID"
// @Success 200 {object} util.Response "成功"
// @Failure 409 {object} util.Response "已拥有或金币不足"
// @Router /api/shop/buy/{equipmentId} [post]
func (c *ShopController) BuyEquipment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	equipmentID := util.MustParseUint(ctx.Param("equipmentId"))
	if equipmentID == 0 {
		util.BadRequest(ctx, "invalid equipment id")
		return
	}

	if err := c.ShopService.BuyEquipment(claims.UserID, equipmentID); err != nil {
		switch {
		case errors.Is(err, util.ErrEquipmentNotFound), errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrEquipmentOwned), errors.Is(err, util.ErrInsufficientCoins):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"bought": equipmentID})
}

// swagger:model EquipRequest
type EquipRequest struct {
	EquipmentID uint `json:"equipmentId" binding:"required"`
}

// Equip godoc
// @Summary 穿戴装备
// @Description 只能穿戴已购装备，槽位由装备类型决定
// @Tags 商店
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param body body EquipRequest true "装备ID"
// @Success 200 {object} util.Response{data=model.UserEquipment} "成功"
// @Router /api/equipment/equip [put]
func (c *ShopController) Equip(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req EquipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ue, err := c.ShopService.Equip(claims.UserID, req.EquipmentID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEquipmentNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrEquipmentNotOwned):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, ue)
}

// swagger:model UnequipRequest
type UnequipRequest struct {
	Type model.EquipmentType `json:"type" binding:"required,oneof=HELM ARMOR PANTS SHOES WEAPON"`
}

// Unequip godoc
// @Summary 卸下装备
// @Tags 商店
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param body body UnequipRequest true "槽位类型"
// @Success 200 {object} util.Response{data=model.UserEquipment} "成功"
// @Router /api/equipment/unequip [put]
func (c *ShopController) Unequip(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UnequipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ue, err := c.ShopService.Unequip(claims.UserID, req.Type)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, ue)
}

// GetUserEquipment godoc
// @Summary 我的装备
// @Description 槽位状态、贴图标识与已购清单
// @Tags 商店
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/equipment [get]
func (c *ShopController) GetUserEquipment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	ue, owned, err := c.ShopService.GetUserEquipment(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	spriteID := ue.SpriteID
	if spriteID == "" {
		spriteID = service.DefaultSpriteID
	}
	util.Success(ctx, gin.H{
		"equipment": ue,
		"spriteId":  spriteID,
		"owned":     owned,
	})
}

// CreateEquipment godoc
// @Summary 新增装备目录条目
// @Tags 商店管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param body body service.EquipmentRequest true "装备信息"
// @Success 201 {object} util.Response{data=model.Equipment} "创建成功"
// @Failure 409 {object} util.Response "编号已被占用"
// @Router /api/admin/equipments [post]
func (c *ShopController) CreateEquipment(ctx *gin.Context) {
	var req service.EquipmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	equipment, err := c.ShopService.CreateEquipment(&req)
	if err != nil {
		if errors.Is(err, util.ErrItemNumberTaken) {
			util.Conflict(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, equipment)
}

// UpdateEquipment godoc
// @Summary 更新装备目录条目
// @Tags 商店管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "装备ID"
// @Param body body service.EquipmentRequest true "装备信息"
// @Success 200 {object} util.Response{data=model.Equipment} "成功"
// @Router /api/admin/equipments/{id} [put]
func (c *ShopController) UpdateEquipment(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.EquipmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	equipment, err := c.ShopService.UpdateEquipment(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEquipmentNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrItemNumberTaken):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, equipment)
}

// DeleteEquipment godoc
// @Summary 删除装备目录条目
// @Tags 商店管理
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "装备ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/equipments/{id} [delete]
func (c *ShopController) DeleteEquipment(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.ShopService.DeleteEquipment(id); err != nil {
		if errors.Is(err, util.ErrEquipmentNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}
