package repository

import (
	"code_quest_backend/internal/model"

	"gorm.io/gorm"
)

type EnemyRepository struct {
	DB *gorm.DB
}

func NewEnemyRepository(db *gorm.DB) *EnemyRepository {
	return &EnemyRepository{DB: db}
}

func (r *EnemyRepository) Create(enemy *model.Enemy) error {
	return r.DB.Create(enemy).Error
}

func (r *EnemyRepository) FindByID(id uint) (*model.Enemy, error) {
	var enemy model.Enemy
	err := r.DB.First(&enemy, id).Error
	return &enemy, err
}

func (r *EnemyRepository) FindAll() ([]model.Enemy, error) {
	var enemies []model.Enemy
	err := r.DB.Order("id ASC").Find(&enemies).Error
	return enemies, err
}

func (r *EnemyRepository) Update(enemy *model.Enemy) error {
	return r.DB.Save(enemy).Error
}

func (r *EnemyRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		// 引用该敌人的关卡置空
		if err := tx.Model(&model.Lesson{}).
			Where("enemy_id = ?", id).
			Update("enemy_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Enemy{}, id).Error
	})
}
