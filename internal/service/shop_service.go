package service

import (
	"code_quest_backend/internal/model"
	"code_quest_backend/internal/repository"
	"code_quest_backend/internal/util"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	shopCatalogCacheKey = "shop:catalog"
	shopCatalogCacheTTL = 5 * time.Minute

	// DefaultSpriteID 五个槽位都为空时的贴图标识（每个槽位默认编号 1）
	DefaultSpriteID = "h1_a1_p1_s1_w1"
)

// ShopService 商店目录、购买台账与装备槽位
type ShopService struct {
	EquipmentRepo *repository.EquipmentRepository
	Redis         *redis.Client
	DB            *gorm.DB
}

func NewShopService(equipmentRepo *repository.EquipmentRepository, rdb *redis.Client, db *gorm.DB) *ShopService {
	return &ShopService{
		EquipmentRepo: equipmentRepo,
		Redis:         rdb,
		DB:            db,
	}
}

// Catalog 商店目录，走 Redis 缓存，管理端写操作时失效
func (s *ShopService) Catalog() ([]model.Equipment, error) {
	ctx := context.Background()

	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, shopCatalogCacheKey).Result(); err == nil {
			var items []model.Equipment
			if err := json.Unmarshal([]byte(val), &items); err == nil {
				return items, nil
			}
		}
	}

	items, err := s.EquipmentRepo.FindAll()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(items); err == nil {
			s.Redis.Set(ctx, shopCatalogCacheKey, data, shopCatalogCacheTTL)
		}
	}
	return items, nil
}

func (s *ShopService) invalidateCatalog() {
	if s.Redis != nil {
		s.Redis.Del(context.Background(), shopCatalogCacheKey)
	}
}

type EquipmentRequest struct {
	Type       model.EquipmentType `json:"type" binding:"required,oneof=HELM ARMOR PANTS SHOES WEAPON"`
	ItemNumber int                 `json:"itemNumber" binding:"required,min=1"`
	Name       string              `json:"name" binding:"required"`
	Price      int                 `json:"price" binding:"min=0"`
}

func (s *ShopService) CreateEquipment(req *EquipmentRequest) (*model.Equipment, error) {
	if _, err := s.EquipmentRepo.FindByTypeAndNumber(req.Type, req.ItemNumber); err == nil {
		return nil, util.ErrItemNumberTaken
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	equipment := &model.Equipment{
		Type:       req.Type,
		ItemNumber: req.ItemNumber,
		Name:       req.Name,
		Price:      req.Price,
	}
	if err := s.EquipmentRepo.Create(equipment); err != nil {
		return nil, err
	}
	s.invalidateCatalog()
	return equipment, nil
}

func (s *ShopService) UpdateEquipment(id uint, req *EquipmentRequest) (*model.Equipment, error) {
	equipment, err := s.getEquipment(id)
	if err != nil {
		return nil, err
	}

	numberChanged := req.Type != equipment.Type || req.ItemNumber != equipment.ItemNumber
	if numberChanged {
		if other, err := s.EquipmentRepo.FindByTypeAndNumber(req.Type, req.ItemNumber); err == nil && other.ID != id {
			return nil, util.ErrItemNumberTaken
		} else if err != nil && err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	equipment.Type = req.Type
	equipment.ItemNumber = req.ItemNumber
	equipment.Name = req.Name
	equipment.Price = req.Price

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(equipment).Error; err != nil {
			return err
		}
		if !numberChanged {
			return nil
		}
		// 编号或类型变了，穿着该装备的用户贴图标识要跟着重算
		return s.refreshSpritesReferencing(tx, id)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateCatalog()
	return equipment, nil
}

// DeleteEquipment 下架装备时同步清掉引用它的槽位和购买台账，
// 避免用户装备记录残留指向已删除条目的引用
func (s *ShopService) DeleteEquipment(id uint) error {
	if _, err := s.getEquipment(id); err != nil {
		return err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var slots []model.UserEquipment
		if err := tx.Where("helm_id = ? OR armor_id = ? OR pants_id = ? OR shoes_id = ? OR weapon_id = ?",
			id, id, id, id, id).Find(&slots).Error; err != nil {
			return err
		}
		for i := range slots {
			ue := &slots[i]
			clearEquipmentSlot(ue, id)
			if err := s.refreshSpriteID(tx, ue); err != nil {
				return err
			}
			if err := tx.Save(ue).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("equipment_id = ?", id).
			Delete(&model.UserBoughtEquipment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Equipment{}, id).Error
	})
	if err != nil {
		return err
	}
	s.invalidateCatalog()
	return nil
}

// BuyEquipment 扣款和建台账在同一事务内；重复购买和余额不足都算状态冲突
func (s *ShopService) BuyEquipment(userID, equipmentID uint) error {
	equipment, err := s.getEquipment(equipmentID)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var owned model.UserBoughtEquipment
		err := tx.Where("user_id = ? AND equipment_id = ?", userID, equipmentID).
			First(&owned).Error
		if err == nil {
			return util.ErrEquipmentOwned
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		var user model.User
		if err := tx.First(&user, userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return util.ErrUserNotFound
			}
			return err
		}
		if user.Coins < equipment.Price {
			return util.ErrInsufficientCoins
		}

		user.Coins -= equipment.Price
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		return tx.Create(&model.UserBoughtEquipment{
			UserID:      userID,
			EquipmentID: equipmentID,
		}).Error
	})
}

// Equip 穿戴已购装备到对应槽位并重算贴图标识
func (s *ShopService) Equip(userID, equipmentID uint) (*model.UserEquipment, error) {
	equipment, err := s.getEquipment(equipmentID)
	if err != nil {
		return nil, err
	}

	if _, err := s.EquipmentRepo.FindOwnership(userID, equipmentID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrEquipmentNotOwned
		}
		return nil, err
	}

	ue, err := s.EquipmentRepo.FindOrCreateUserEquipment(userID)
	if err != nil {
		return nil, err
	}

	id := equipment.ID
	switch equipment.Type {
	case model.EquipmentHelm:
		ue.HelmID = &id
	case model.EquipmentArmor:
		ue.ArmorID = &id
	case model.EquipmentPants:
		ue.PantsID = &id
	case model.EquipmentShoes:
		ue.ShoesID = &id
	case model.EquipmentWeapon:
		ue.WeaponID = &id
	}

	if err := s.refreshSpriteID(s.DB, ue); err != nil {
		return nil, err
	}
	if err := s.EquipmentRepo.SaveUserEquipment(ue); err != nil {
		return nil, err
	}
	return ue, nil
}

// Unequip 清空指定类型的槽位
func (s *ShopService) Unequip(userID uint, t model.EquipmentType) (*model.UserEquipment, error) {
	ue, err := s.EquipmentRepo.FindOrCreateUserEquipment(userID)
	if err != nil {
		return nil, err
	}

	switch t {
	case model.EquipmentHelm:
		ue.HelmID = nil
	case model.EquipmentArmor:
		ue.ArmorID = nil
	case model.EquipmentPants:
		ue.PantsID = nil
	case model.EquipmentShoes:
		ue.ShoesID = nil
	case model.EquipmentWeapon:
		ue.WeaponID = nil
	default:
		return nil, util.ErrEquipmentNotFound
	}

	if err := s.refreshSpriteID(s.DB, ue); err != nil {
		return nil, err
	}
	if err := s.EquipmentRepo.SaveUserEquipment(ue); err != nil {
		return nil, err
	}
	return ue, nil
}

func (s *ShopService) GetUserEquipment(userID uint) (*model.UserEquipment, []model.UserBoughtEquipment, error) {
	ue, err := s.EquipmentRepo.FindOrCreateUserEquipment(userID)
	if err != nil {
		return nil, nil, err
	}
	owned, err := s.EquipmentRepo.ListOwned(userID)
	if err != nil {
		return nil, nil, err
	}
	return ue, owned, nil
}

// refreshSpritesReferencing 重算所有槽位引用指定装备的用户贴图标识
func (s *ShopService) refreshSpritesReferencing(tx *gorm.DB, equipmentID uint) error {
	var slots []model.UserEquipment
	if err := tx.Where("helm_id = ? OR armor_id = ? OR pants_id = ? OR shoes_id = ? OR weapon_id = ?",
		equipmentID, equipmentID, equipmentID, equipmentID, equipmentID).
		Find(&slots).Error; err != nil {
		return err
	}
	for i := range slots {
		if err := s.refreshSpriteID(tx, &slots[i]); err != nil {
			return err
		}
		if err := tx.Save(&slots[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// clearEquipmentSlot 把指向指定装备的槽位清空
func clearEquipmentSlot(ue *model.UserEquipment, equipmentID uint) {
	for _, slot := range []**uint{&ue.HelmID, &ue.ArmorID, &ue.PantsID, &ue.ShoesID, &ue.WeaponID} {
		if *slot != nil && **slot == equipmentID {
			*slot = nil
		}
	}
}

// refreshSpriteID 由五个槽位的 itemNumber 拼出贴图标识，空槽位取 1。
// 槽位指向已下架装备时同样按默认编号处理
func (s *ShopService) refreshSpriteID(db *gorm.DB, ue *model.UserEquipment) error {
	numbers := make(map[model.EquipmentType]int, len(model.AllEquipmentTypes))
	slots := map[model.EquipmentType]*uint{
		model.EquipmentHelm:   ue.HelmID,
		model.EquipmentArmor:  ue.ArmorID,
		model.EquipmentPants:  ue.PantsID,
		model.EquipmentShoes:  ue.ShoesID,
		model.EquipmentWeapon: ue.WeaponID,
	}

	for _, t := range model.AllEquipmentTypes {
		numbers[t] = 1
		if slots[t] == nil {
			continue
		}
		var equipment model.Equipment
		if err := db.First(&equipment, *slots[t]).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return err
		}
		numbers[t] = equipment.ItemNumber
	}

	ue.SpriteID = fmt.Sprintf("h%d_a%d_p%d_s%d_w%d",
		numbers[model.EquipmentHelm],
		numbers[model.EquipmentArmor],
		numbers[model.EquipmentPants],
		numbers[model.EquipmentShoes],
		numbers[model.EquipmentWeapon],
	)
	return nil
}

func (s *ShopService) getEquipment(id uint) (*model.Equipment, error) {
	equipment, err := s.EquipmentRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrEquipmentNotFound
		}
		return nil, err
	}
	return equipment, nil
}
