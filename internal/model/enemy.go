package model

// Enemy 关卡中出现的敌人，仅用于展示
// swagger:model Enemy
type Enemy struct {
	BaseModel
	Name           string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	SpriteImageURL string `gorm:"size:255" json:"spriteImageUrl"`
}

func (Enemy) TableName() string {
	return "enemies"
}
