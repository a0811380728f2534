package repository

import (
	"code_quest_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindLessonProgress(userID, lessonID uint) (*model.UserLessonProgress, error) {
	var progress model.UserLessonProgress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&progress).Error
	return &progress, err
}

func (r *ProgressRepository) FindLessonProgressByCourse(userID, courseID uint) ([]model.UserLessonProgress, error) {
	var progresses []model.UserLessonProgress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		Find(&progresses).Error
	return progresses, err
}

func (r *ProgressRepository) FindCourseProgress(userID, courseID uint) (*model.UserCourseProgress, error) {
	var progress model.UserCourseProgress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&progress).Error
	return &progress, err
}

func (r *ProgressRepository) FindCourseProgressByUser(userID uint) ([]model.UserCourseProgress, error) {
	var progresses []model.UserCourseProgress
	err := r.DB.Where("user_id = ?", userID).Find(&progresses).Error
	return progresses, err
}
