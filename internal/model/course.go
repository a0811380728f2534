package model

// swagger:model Course
type Course struct {
	BaseModel
	Title          string `gorm:"size:200;uniqueIndex;not null" json:"title"`
	Description    string `gorm:"type:text" json:"description"`
	TotalLessons   int    `gorm:"default:0" json:"totalLessons"`
	EstimatedHours int    `gorm:"default:0" json:"estimatedHours"`
	IsPublished    bool   `gorm:"default:false" json:"isPublished"`
	TrophyImageURL string `gorm:"size:255" json:"trophyImageUrl"`
}

func (Course) TableName() string {
	return "courses"
}
