package util

import "errors"

var (
	ErrUserNotFound      = errors.New("用户不存在")
	ErrLoginTaken        = errors.New("该用户名已被注册")
	ErrCourseNotFound    = errors.New("course not found")
	ErrLessonNotFound    = errors.New("lesson not found")
	ErrEnemyNotFound     = errors.New("enemy not found")
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrPostNotFound      = errors.New("post not found")
	ErrCommentNotFound   = errors.New("comment not found")
	ErrReportNotFound    = errors.New("report not found")

	ErrNoHearts          = errors.New("no hearts left")
	ErrHeartsFull        = errors.New("hearts already at maximum")
	ErrInsufficientCoins = errors.New("insufficient coins")
	ErrEquipmentOwned    = errors.New("equipment already owned")
	ErrEquipmentNotOwned = errors.New("equipment not owned")
	ErrCoursePublished   = errors.New("published course cannot be deleted")
	ErrTitleTaken        = errors.New("course title already used")
	ErrLessonNotInCourse = errors.New("lesson does not belong to course")
	ErrOrderIndexTaken   = errors.New("order index already used in this course")
	ErrItemNumberTaken   = errors.New("item number already used for this equipment type")
	ErrReportClosed      = errors.New("report already closed")

	ErrPermissionDenied = errors.New("permission denied")
)
