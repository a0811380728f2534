package repository

import (
	"code_quest_backend/internal/model"

	"gorm.io/gorm"
)

type EquipmentRepository struct {
	DB *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{DB: db}
}

func (r *EquipmentRepository) Create(equipment *model.Equipment) error {
	return r.DB.Create(equipment).Error
}

func (r *EquipmentRepository) FindByID(id uint) (*model.Equipment, error) {
	var equipment model.Equipment
	err := r.DB.First(&equipment, id).Error
	return &equipment, err
}

func (r *EquipmentRepository) FindByTypeAndNumber(t model.EquipmentType, itemNumber int) (*model.Equipment, error) {
	var equipment model.Equipment
	err := r.DB.Where("type = ? AND item_number = ?", t, itemNumber).
		First(&equipment).Error
	return &equipment, err
}

func (r *EquipmentRepository) FindAll() ([]model.Equipment, error) {
	var equipments []model.Equipment
	err := r.DB.Order("type ASC, item_number ASC").Find(&equipments).Error
	return equipments, err
}

func (r *EquipmentRepository) FindOwnership(userID, equipmentID uint) (*model.UserBoughtEquipment, error) {
	var owned model.UserBoughtEquipment
	err := r.DB.Where("user_id = ? AND equipment_id = ?", userID, equipmentID).
		First(&owned).Error
	return &owned, err
}

func (r *EquipmentRepository) ListOwned(userID uint) ([]model.UserBoughtEquipment, error) {
	var owned []model.UserBoughtEquipment
	err := r.DB.Where("user_id = ?", userID).Find(&owned).Error
	return owned, err
}

// FindOrCreateUserEquipment 取用户装备槽记录，没有则建一条空记录
func (r *EquipmentRepository) FindOrCreateUserEquipment(userID uint) (*model.UserEquipment, error) {
	var ue model.UserEquipment
	err := r.DB.Where("user_id = ?", userID).First(&ue).Error
	if err == gorm.ErrRecordNotFound {
		ue = model.UserEquipment{UserID: userID}
		if err := r.DB.Create(&ue).Error; err != nil {
			return nil, err
		}
		return &ue, nil
	}
	if err != nil {
		return nil, err
	}
	return &ue, nil
}

func (r *EquipmentRepository) SaveUserEquipment(ue *model.UserEquipment) error {
	return r.DB.Save(ue).Error
}
