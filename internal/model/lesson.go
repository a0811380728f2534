package model

import (
	"gorm.io/datatypes"
)

// Lesson 属于唯一课程，orderIndex 在同一课程内唯一（冲突时交换而非报错）
// swagger:model Lesson
type Lesson struct {
	BaseModel
	CourseID   uint           `gorm:"index;not null" json:"courseId"`
	Title      string         `gorm:"size:200" json:"title"`
	OrderIndex int            `gorm:"not null" json:"orderIndex"`
	EnemyID    *uint          `gorm:"index" json:"enemyId"`
	Tasks      datatypes.JSON `json:"tasks"` // 异构练习题列表，type 字段区分题型
}

func (Lesson) TableName() string {
	return "lessons"
}
