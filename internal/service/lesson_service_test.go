package service

import (
	"code_quest_backend/internal/model"
	"code_quest_backend/internal/repository"
	"code_quest_backend/internal/util"
	"errors"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newLessonService(t *testing.T) (*LessonService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewLessonService(
		repository.NewLessonRepository(db),
		repository.NewCourseRepository(db),
		repository.NewEnemyRepository(db),
		db,
	)
	return svc, db
}

func TestCreateLessonRejectsTakenOrderIndex(t *testing.T) {
	svc, db := newLessonService(t)
	course := &model.Course{Title: "C Basics", TotalLessons: 5}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}

	if _, err := svc.CreateLesson(course.ID, &LessonRequest{Title: "One", OrderIndex: 1}); err != nil {
		t.Fatalf("CreateLesson: %v", err)
	}
	if _, err := svc.CreateLesson(course.ID, &LessonRequest{Title: "Dup", OrderIndex: 1}); !errors.Is(err, util.ErrOrderIndexTaken) {
		t.Fatalf("err = %v, want ErrOrderIndexTaken", err)
	}
}

func TestUpdateLessonSwapsOrderIndex(t *testing.T) {
	svc, db := newLessonService(t)
	course := &model.Course{Title: "C Basics", TotalLessons: 5}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}

	first, err := svc.CreateLesson(course.ID, &LessonRequest{Title: "One", OrderIndex: 1})
	if err != nil {
		t.Fatalf("CreateLesson: %v", err)
	}
	second, err := svc.CreateLesson(course.ID, &LessonRequest{Title: "Two", OrderIndex: 2})
	if err != nil {
		t.Fatalf("CreateLesson: %v", err)
	}

	// 把第一关移到已被占用的序号 2：两关应交换位置
	updated, err := svc.UpdateLesson(first.ID, &LessonRequest{Title: "One", OrderIndex: 2})
	if err != nil {
		t.Fatalf("UpdateLesson: %v", err)
	}
	if updated.OrderIndex != 2 {
		t.Fatalf("moved lesson order = %d, want 2", updated.OrderIndex)
	}

	var occupant model.Lesson
	db.First(&occupant, second.ID)
	if occupant.OrderIndex != 1 {
		t.Fatalf("displaced lesson order = %d, want 1", occupant.OrderIndex)
	}
}

func TestCreateLessonValidatesTasks(t *testing.T) {
	svc, db := newLessonService(t)
	course := &model.Course{Title: "C Basics", TotalLessons: 5}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}

	bad := datatypes.JSON(`[{"type":"mind_reading","question":"?"}]`)
	if _, err := svc.CreateLesson(course.ID, &LessonRequest{Title: "Bad", OrderIndex: 1, Tasks: bad}); err == nil {
		t.Fatalf("expected unknown task type to be rejected")
	}

	good := datatypes.JSON(`[{"type":"multiple_choice","question":"2+2?","options":["3","4"],"correctIndex":1}]`)
	if _, err := svc.CreateLesson(course.ID, &LessonRequest{Title: "Good", OrderIndex: 1, Tasks: good}); err != nil {
		t.Fatalf("CreateLesson with valid tasks: %v", err)
	}
}

func TestCreateLessonValidatesEnemyRef(t *testing.T) {
	svc, db := newLessonService(t)
	course := &model.Course{Title: "C Basics", TotalLessons: 5}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}

	missing := uint(999)
	_, err := svc.CreateLesson(course.ID, &LessonRequest{Title: "Boss", OrderIndex: 1, EnemyID: &missing})
	if !errors.Is(err, util.ErrEnemyNotFound) {
		t.Fatalf("err = %v, want ErrEnemyNotFound", err)
	}
}

func TestDeleteLessonRemovesProgress(t *testing.T) {
	svc, db := newLessonService(t)
	course := &model.Course{Title: "C Basics", TotalLessons: 5}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}
	lesson, err := svc.CreateLesson(course.ID, &LessonRequest{Title: "One", OrderIndex: 1})
	if err != nil {
		t.Fatalf("CreateLesson: %v", err)
	}
	db.Create(&model.UserLessonProgress{UserID: 1, LessonID: lesson.ID, CourseID: course.ID, StarsEarned: 2})

	if err := svc.DeleteLesson(lesson.ID); err != nil {
		t.Fatalf("DeleteLesson: %v", err)
	}

	var count int64
	db.Model(&model.UserLessonProgress{}).Where("lesson_id = ?", lesson.ID).Count(&count)
	if count != 0 {
		t.Fatalf("progress rows = %d, want 0", count)
	}
}
