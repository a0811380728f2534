package service

import (
	"code_quest_backend/internal/config"
	"code_quest_backend/internal/model"
	"code_quest_backend/pkg/logger"
	"fmt"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 每个测试用独立的内存库，迁移全部表
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Log = zap.NewNop()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Lesson{},
		&model.Enemy{},
		&model.UserCourseProgress{},
		&model.UserLessonProgress{},
		&model.Equipment{},
		&model.UserBoughtEquipment{},
		&model.UserEquipment{},
		&model.Post{},
		&model.Comment{},
		&model.Report{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.Game.ApplyDefaults()
	return cfg
}

func createTestUser(t *testing.T, db *gorm.DB, login string, mutate func(*model.User)) *model.User {
	t.Helper()
	user := &model.User{
		Login:    login,
		Password: "hashed",
		Role:     model.RoleUser,
		Hearts:   5,
	}
	if mutate != nil {
		mutate(user)
	}
	hearts := user.Hearts
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", login, err)
	}
	// hearts 上的 default:5 标签会让 gorm 在插入时吞掉显式的 0，
	// 创建后强制写回测试指定的值
	user.Hearts = hearts
	if err := db.Model(user).Update("hearts", hearts).Error; err != nil {
		t.Fatalf("failed to set hearts for user %s: %v", login, err)
	}
	return user
}
