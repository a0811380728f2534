package model

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// swagger:model User
type User struct {
	BaseModel
	Login             string     `gorm:"size:100;uniqueIndex;not null" json:"login"`
	Password          string     `gorm:"size:100;not null" json:"-"`
	Role              UserRole   `gorm:"size:20;default:'USER'" json:"role"`
	Coins             int        `gorm:"default:0" json:"coins"`
	Points            int        `gorm:"default:0" json:"points"`
	Rank              int        `gorm:"default:0" json:"rank"` // 0 表示未上榜
	Hearts            int        `gorm:"default:5" json:"hearts"`
	LastHeartRecovery *time.Time `json:"lastHeartRecovery"` // 红心恢复计时起点，满心时为空
	Blocked           bool       `gorm:"default:false" json:"blocked"`
}

func (User) TableName() string {
	return "users"
}
