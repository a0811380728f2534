package service

import (
	"code_quest_backend/internal/model"
	"code_quest_backend/internal/repository"
	"code_quest_backend/internal/util"

	"gorm.io/gorm"
)

// ProgressService 维护关卡与课程两级进度，所有合并都是单调的：
// 星级/积分只升不降，用时只取最好成绩
type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	LessonRepo   *repository.LessonRepository
	CourseRepo   *repository.CourseRepository
	Economy      *EconomyService
	DB           *gorm.DB
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	lessonRepo *repository.LessonRepository,
	courseRepo *repository.CourseRepository,
	economy *EconomyService,
	db *gorm.DB,
) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		LessonRepo:   lessonRepo,
		CourseRepo:   courseRepo,
		Economy:      economy,
		DB:           db,
	}
}

type LessonSubmission struct {
	LessonID         uint `json:"lessonId" binding:"required"`
	CourseID         uint `json:"courseId" binding:"required"`
	StarsEarned      int  `json:"starsEarned" binding:"min=0,max=3"`
	PointsEarned     int  `json:"pointsEarned" binding:"min=0"`
	TimeTakenSeconds int  `json:"timeTakenSeconds" binding:"min=0"`
}

// LessonProgressResult 合并后的进度与本次实际入账的奖励
type LessonProgressResult struct {
	Progress      *model.UserLessonProgress `json:"progress"`
	CoinsAwarded  int                       `json:"coinsAwarded"`
	PointsAwarded int                       `json:"pointsAwarded"`
}

// RecordLessonProgress 记录一次关卡提交。三个指标各自独立合并，
// 奖励结算与进度写入在同一事务内完成
func (s *ProgressService) RecordLessonProgress(userID uint, sub *LessonSubmission) (*LessonProgressResult, error) {
	lesson, err := s.LessonRepo.FindByID(sub.LessonID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	if lesson.CourseID != sub.CourseID {
		return nil, util.ErrLessonNotInCourse
	}

	result := &LessonProgressResult{}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var progress model.UserLessonProgress
		err := tx.Where("user_id = ? AND lesson_id = ?", userID, sub.LessonID).
			First(&progress).Error

		if err == gorm.ErrRecordNotFound {
			// 首次提交：原样落库，奖励按从零开始结算
			progress = model.UserLessonProgress{
				UserID:           userID,
				LessonID:         sub.LessonID,
				CourseID:         sub.CourseID,
				StarsEarned:      sub.StarsEarned,
				PointsEarned:     sub.PointsEarned,
				TimeTakenSeconds: sub.TimeTakenSeconds,
			}
			if err := tx.Create(&progress).Error; err != nil {
				return err
			}
			result.CoinsAwarded = LessonCoinReward(0, sub.StarsEarned)
			result.PointsAwarded = LessonPointReward(0, sub.PointsEarned)
		} else if err != nil {
			return err
		} else {
			result.CoinsAwarded = LessonCoinReward(progress.StarsEarned, sub.StarsEarned)
			result.PointsAwarded = LessonPointReward(progress.PointsEarned, sub.PointsEarned)

			changed := false
			if sub.StarsEarned > progress.StarsEarned {
				progress.StarsEarned = sub.StarsEarned
				changed = true
			}
			if sub.PointsEarned > progress.PointsEarned {
				progress.PointsEarned = sub.PointsEarned
				changed = true
			}
			if sub.TimeTakenSeconds < progress.TimeTakenSeconds {
				progress.TimeTakenSeconds = sub.TimeTakenSeconds
				changed = true
			}
			if changed {
				if err := tx.Save(&progress).Error; err != nil {
					return err
				}
			}
		}

		if err := s.Economy.ApplyRewards(tx, userID, result.CoinsAwarded, result.PointsAwarded); err != nil {
			return err
		}

		result.Progress = &progress
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateCourseProgress 更新课程进度。completedLessons 表示已完成的最高
// 关卡序号，只有大于已记录值时才写入；达到课程总关数后 isFinished 永久置真
func (s *ProgressService) UpdateCourseProgress(userID, courseID uint, completedLessons int) (*model.UserCourseProgress, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if completedLessons > course.TotalLessons {
		completedLessons = course.TotalLessons
	}

	var progress model.UserCourseProgress
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).
			First(&progress).Error

		if err == gorm.ErrRecordNotFound {
			progress = model.UserCourseProgress{
				UserID:           userID,
				CourseID:         courseID,
				CompletedLessons: completedLessons,
			}
			if course.TotalLessons > 0 && completedLessons >= course.TotalLessons {
				progress.IsFinished = true
			}
			return tx.Create(&progress).Error
		}
		if err != nil {
			return err
		}

		if completedLessons <= progress.CompletedLessons {
			return nil
		}

		progress.CompletedLessons = completedLessons
		if course.TotalLessons > 0 && completedLessons >= course.TotalLessons {
			progress.IsFinished = true
		}
		return tx.Save(&progress).Error
	})
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// GetCompletedLessons 查询课程已完成关数。没有进度记录返回 0，不报错
func (s *ProgressService) GetCompletedLessons(userID, courseID uint) (int, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, util.ErrCourseNotFound
		}
		return 0, err
	}

	progress, err := s.ProgressRepo.FindCourseProgress(userID, courseID)
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return progress.CompletedLessons, nil
}

// GetCourseProgressOverview 用户全部课程进度
func (s *ProgressService) GetCourseProgressOverview(userID uint) ([]model.UserCourseProgress, error) {
	return s.ProgressRepo.FindCourseProgressByUser(userID)
}

// GetLessonProgressForCourse 课程内每个关卡的最好成绩
func (s *ProgressService) GetLessonProgressForCourse(userID, courseID uint) ([]model.UserLessonProgress, error) {
	return s.ProgressRepo.FindLessonProgressByCourse(userID, courseID)
}
