package model

// UserCourseProgress 每个 (user, course) 一行
// completedLessons 表示已完成的最高关卡序号，只增不减
// swagger:model UserCourseProgress
type UserCourseProgress struct {
	BaseModel
	UserID           uint `gorm:"index:idx_user_course,unique;not null" json:"userId"`
	CourseID         uint `gorm:"index:idx_user_course,unique;not null" json:"courseId"`
	CompletedLessons int  `gorm:"default:0" json:"completedLessons"`
	IsFinished       bool `gorm:"default:false" json:"isFinished"`
}

func (UserCourseProgress) TableName() string {
	return "user_course_progresses"
}

// UserLessonProgress 每个 (user, lesson) 一行，三个指标各自单调合并：
// 星级/积分取最大值，用时取最小值
// swagger:model UserLessonProgress
type UserLessonProgress struct {
	BaseModel
	UserID           uint `gorm:"index:idx_user_lesson,unique;not null" json:"userId"`
	LessonID         uint `gorm:"index:idx_user_lesson,unique;not null" json:"lessonId"`
	CourseID         uint `gorm:"index;not null" json:"courseId"`
	StarsEarned      int  `gorm:"default:0" json:"starsEarned"`
	PointsEarned     int  `gorm:"default:0" json:"pointsEarned"`
	TimeTakenSeconds int  `gorm:"default:0" json:"timeTakenSeconds"`
}

func (UserLessonProgress) TableName() string {
	return "user_lesson_progresses"
}
