package repository

import (
	"code_quest_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByLogin(login string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("login = ?", login).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// FindBelowMaxHearts 红心未满的用户，恢复任务逐个处理
func (r *UserRepository) FindBelowMaxHearts(max int) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("hearts < ?", max).Find(&users).Error
	return users, err
}

// FindRankedUsers 参与排名的用户：仅普通用户，按积分降序、
// 积分相同时按 id 升序保证结果可复现
func (r *UserRepository) FindRankedUsers() ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("role = ?", model.RoleUser).
		Order("points DESC, id ASC").
		Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdateRank(userID uint, rank int) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("rank", rank).
		Error
}

func (r *UserRepository) List(page, pageSize int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	query := r.DB.Model(&model.User{})
	query.Count(&total)

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&users).Error
	return users, total, err
}

func (r *UserRepository) SetBlocked(userID uint, blocked bool) error {
	res := r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("blocked", blocked)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
