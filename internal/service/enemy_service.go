package service

import (
	"code_quest_backend/internal/model"
	"code_quest_backend/internal/repository"
	"code_quest_backend/internal/util"
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"gorm.io/gorm"
)

// EnemyService 敌人目录，仅管理员维护
type EnemyService struct {
	EnemyRepo *repository.EnemyRepository
	Storage   *StorageService
}

func NewEnemyService(enemyRepo *repository.EnemyRepository, storage *StorageService) *EnemyService {
	return &EnemyService{
		EnemyRepo: enemyRepo,
		Storage:   storage,
	}
}

func (s *EnemyService) CreateEnemy(enemy *model.Enemy) error {
	return s.EnemyRepo.Create(enemy)
}

func (s *EnemyService) GetEnemy(id uint) (*model.Enemy, error) {
	enemy, err := s.EnemyRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrEnemyNotFound
		}
		return nil, err
	}
	return enemy, nil
}

func (s *EnemyService) ListEnemies() ([]model.Enemy, error) {
	return s.EnemyRepo.FindAll()
}

func (s *EnemyService) UpdateEnemy(id uint, name string) (*model.Enemy, error) {
	enemy, err := s.GetEnemy(id)
	if err != nil {
		return nil, err
	}
	enemy.Name = name
	if err := s.EnemyRepo.Update(enemy); err != nil {
		return nil, err
	}
	return enemy, nil
}

func (s *EnemyService) DeleteEnemy(id uint) error {
	if _, err := s.GetEnemy(id); err != nil {
		return err
	}
	return s.EnemyRepo.Delete(id)
}

// UploadSpriteImage 上传敌人贴图并回写 URL
func (s *EnemyService) UploadSpriteImage(enemyID uint, file *multipart.FileHeader) (string, error) {
	enemy, err := s.GetEnemy(enemyID)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if _, err := util.ValidateMimeType(src, []string{util.MimeImage}); err != nil {
		return "", fmt.Errorf("非法的文件内容: %v", err)
	}
	if _, err := src.Seek(0, 0); err != nil {
		return "", err
	}

	filename := "enemies/" + model.GenerateUUID() + filepath.Ext(file.Filename)
	url, err := s.Storage.Upload(context.Background(), filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}

	enemy.SpriteImageURL = url
	if err := s.EnemyRepo.Update(enemy); err != nil {
		return "", err
	}
	return url, nil
}
