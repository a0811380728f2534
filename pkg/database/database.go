package database

import (
	"code_quest_backend/internal/config"
	"code_quest_backend/internal/model"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	logMode := logger.Warn
	if cfg.Server.Mode == "debug" {
		logMode = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release 模式下默认跳过迁移，需要 --migrate 标志显式开启
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := Migrate(db, cfg); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// Migrate 执行表结构迁移并填充初始数据
func Migrate(db *gorm.DB, cfg *config.Config) error {
	err := db.AutoMigrate(
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
		return err
	}

	log.Println("Database migration completed")

	return seed(db, cfg)
}

// seed 默认管理员账号和基础装备目录，只在对应表为空时写入
func seed(db *gorm.DB, cfg *config.Config) error {
	var adminCount int64
	db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := &model.User{
			Login:    "admin",
			Password: string(hash),
			Role:     model.RoleAdmin,
			Hearts:   cfg.Game.MaxHearts,
		}
		if err := db.Create(admin).Error; err != nil {
			return err
		}
		log.Println("Default admin account created, change the password immediately")
	}

	var equipmentCount int64
	db.Model(&model.Equipment{}).Count(&equipmentCount)
	if equipmentCount == 0 {
		starterItems := []model.Equipment{
			{Name: "皮质头盔", Type: model.EquipmentHelm, ItemNumber: 1, Price: 30},
			{Name: "布甲", Type: model.EquipmentArmor, ItemNumber: 1, Price: 40},
			{Name: "旅行者长裤", Type: model.EquipmentPants, ItemNumber: 1, Price: 25},
			{Name: "草鞋", Type: model.EquipmentShoes, ItemNumber: 1, Price: 20},
			{Name: "木剑", Type: model.EquipmentWeapon, ItemNumber: 1, Price: 50},
		}
		for i := range starterItems {
			if err := db.Create(&starterItems[i]).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
