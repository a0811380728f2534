package service

import (
	"code_quest_backend/internal/config"
	"code_quest_backend/internal/model"
	"code_quest_backend/internal/repository"
	"code_quest_backend/internal/util"
	"code_quest_backend/pkg/logger"
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
	LessonRepo *repository.LessonRepository
	Storage    *StorageService
	Cfg        *config.Config
	DB         *gorm.DB
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
	storage *StorageService,
	cfg *config.Config,
	db *gorm.DB,
) *CourseService {
	return &CourseService{
		CourseRepo: courseRepo,
		LessonRepo: lessonRepo,
		Storage:    storage,
		Cfg:        cfg,
		DB:         db,
	}
}

func (s *CourseService) CreateCourse(course *model.Course) error {
	// 课程标题全局唯一，先查重再落库，把唯一索引冲突变成业务错误
	if _, err := s.CourseRepo.FindByTitle(course.Title); err == nil {
		return util.ErrTitleTaken
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	// 新课程一律以未发布状态创建
	course.IsPublished = false
	return s.CourseRepo.Create(course)
}

func (s *CourseService) GetCourse(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// ListCourses 普通用户只看已发布课程，管理员看全部
func (s *CourseService) ListCourses(role model.UserRole) ([]model.Course, error) {
	return s.CourseRepo.FindAll(role != model.RoleAdmin)
}

type CourseUpdate struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	TotalLessons   *int    `json:"totalLessons" binding:"omitempty,min=0"`
	EstimatedHours *int    `json:"estimatedHours" binding:"omitempty,min=0"`
	IsPublished    *bool   `json:"isPublished"`
}

func (s *CourseService) UpdateCourse(id uint, update *CourseUpdate) (*model.Course, error) {
	course, err := s.GetCourse(id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil && *update.Title != course.Title {
		if other, err := s.CourseRepo.FindByTitle(*update.Title); err == nil && other.ID != id {
			return nil, util.ErrTitleTaken
		} else if err != nil && err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	if update.Title != nil {
		course.Title = *update.Title
	}
	if update.Description != nil {
		course.Description = *update.Description
	}
	if update.TotalLessons != nil {
		course.TotalLessons = *update.TotalLessons
	}
	if update.EstimatedHours != nil {
		course.EstimatedHours = *update.EstimatedHours
	}
	if update.IsPublished != nil {
		course.IsPublished = *update.IsPublished
	}

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourse 已发布课程禁止删除；未发布课程连同其关卡和进度记录
// 在一个事务内清掉
func (s *CourseService) DeleteCourse(id uint) error {
	course, err := s.GetCourse(id)
	if err != nil {
		return err
	}
	if course.IsPublished {
		return util.ErrCoursePublished
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&model.UserLessonProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.UserCourseProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.Lesson{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Course{}, id).Error
	})
	if err != nil {
		return err
	}

	// 奖杯图片清理是尽力而为，失败只记日志
	if course.TrophyImageURL != "" {
		if err := s.Storage.DeleteByURL(context.Background(), course.TrophyImageURL); err != nil {
			logger.Log.Warn("failed to delete trophy image",
				zap.String("url", course.TrophyImageURL),
				zap.Error(err))
		}
	}
	return nil
}

// UploadTrophyImage 上传课程奖杯图片并回写 URL
func (s *CourseService) UploadTrophyImage(courseID uint, file *multipart.FileHeader) (string, error) {
	course, err := s.GetCourse(courseID)
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

	filename := "trophies/" + model.GenerateUUID() + filepath.Ext(file.Filename)
	url, err := s.Storage.Upload(context.Background(), filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}

	course.TrophyImageURL = url
	if err := s.CourseRepo.Update(course); err != nil {
		return "", err
	}
	return url, nil
}
