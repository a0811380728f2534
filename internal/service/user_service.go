package service

import (
	"code_quest_backend/internal/model"
	"code_quest_backend/internal/repository"
	"code_quest_backend/internal/util"

	"gorm.io/gorm"
)

// UserService 处理用户资料与管理端用户操作
type UserService struct {
	UserRepo      *repository.UserRepository
	EquipmentRepo *repository.EquipmentRepository
}

func NewUserService(userRepo *repository.UserRepository, equipmentRepo *repository.EquipmentRepository) *UserService {
	return &UserService{
		UserRepo:      userRepo,
		EquipmentRepo: equipmentRepo,
	}
}

// Profile 用户资料快照，附带当前装扮贴图标识
type Profile struct {
	User     *model.User `json:"user"`
	SpriteID string      `json:"spriteId"`
}

func (s *UserService) GetProfile(userID uint) (*Profile, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	ue, err := s.EquipmentRepo.FindOrCreateUserEquipment(userID)
	if err != nil {
		return nil, err
	}
	spriteID := ue.SpriteID
	if spriteID == "" {
		spriteID = DefaultSpriteID
	}

	return &Profile{User: user, SpriteID: spriteID}, nil
}

func (s *UserService) ListUsers(page, pageSize int) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.UserRepo.List(page, pageSize)
}

func (s *UserService) SetBlocked(userID uint, blocked bool) error {
	err := s.UserRepo.SetBlocked(userID, blocked)
	if err == gorm.ErrRecordNotFound {
		return util.ErrUserNotFound
	}
	return err
}
