package service

import (
	"code_quest_backend/internal/model"
	"code_quest_backend/internal/repository"
	"code_quest_backend/internal/util"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LessonService struct {
	LessonRepo *repository.LessonRepository
	CourseRepo *repository.CourseRepository
	EnemyRepo  *repository.EnemyRepository
	DB         *gorm.DB
}

func NewLessonService(
	lessonRepo *repository.LessonRepository,
	courseRepo *repository.CourseRepository,
	enemyRepo *repository.EnemyRepository,
	db *gorm.DB,
) *LessonService {
	return &LessonService{
		LessonRepo: lessonRepo,
		CourseRepo: courseRepo,
		EnemyRepo:  enemyRepo,
		DB:         db,
	}
}

type LessonRequest struct {
	Title      string         `json:"title" binding:"required"`
	OrderIndex int            `json:"orderIndex" binding:"min=1"`
	EnemyID    *uint          `json:"enemyId"`
	Tasks      datatypes.JSON `json:"tasks"`
}

func (s *LessonService) CreateLesson(courseID uint, req *LessonRequest) (*model.Lesson, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if err := s.validateLessonRefs(req); err != nil {
		return nil, err
	}

	if _, err := s.LessonRepo.FindByCourseAndOrder(courseID, req.OrderIndex); err == nil {
		return nil, util.ErrOrderIndexTaken
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	lesson := &model.Lesson{
		CourseID:   courseID,
		Title:      req.Title,
		OrderIndex: req.OrderIndex,
		EnemyID:    req.EnemyID,
		Tasks:      req.Tasks,
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) GetLesson(id uint) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) ListLessons(courseID uint) ([]model.Lesson, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return s.LessonRepo.FindByCourseOrdered(courseID)
}

// UpdateLesson 更新关卡。目标序号已被同课程其他关卡占用时，
// 两个关卡在同一事务内交换序号而不是报错
func (s *LessonService) UpdateLesson(id uint, req *LessonRequest) (*model.Lesson, error) {
	lesson, err := s.GetLesson(id)
	if err != nil {
		return nil, err
	}

	if err := s.validateLessonRefs(req); err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if req.OrderIndex != lesson.OrderIndex {
			var occupant model.Lesson
			err := tx.Where("course_id = ? AND order_index = ? AND id <> ?",
				lesson.CourseID, req.OrderIndex, lesson.ID).
				First(&occupant).Error
			if err == nil {
				occupant.OrderIndex = lesson.OrderIndex
				if err := tx.Save(&occupant).Error; err != nil {
					return err
				}
			} else if err != gorm.ErrRecordNotFound {
				return err
			}
			lesson.OrderIndex = req.OrderIndex
		}

		lesson.Title = req.Title
		lesson.EnemyID = req.EnemyID
		lesson.Tasks = req.Tasks
		return tx.Save(lesson).Error
	})
	if err != nil {
		return nil, err
	}
	return lesson, nil
}

// DeleteLesson 删除关卡及其进度记录
func (s *LessonService) DeleteLesson(id uint) error {
	lesson, err := s.GetLesson(id)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lesson_id = ?", lesson.ID).Delete(&model.UserLessonProgress{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Lesson{}, lesson.ID).Error
	})
}

// validateLessonRefs 校验题目载荷和敌人引用
func (s *LessonService) validateLessonRefs(req *LessonRequest) error {
	if len(req.Tasks) > 0 {
		if _, err := model.UnmarshalTasks(req.Tasks); err != nil {
			return err
		}
	}
	if req.EnemyID != nil {
		if _, err := s.EnemyRepo.FindByID(*req.EnemyID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return util.ErrEnemyNotFound
			}
			return err
		}
	}
	return nil
}
