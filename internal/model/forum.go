package model

// swagger:model Post
type Post struct {
	BaseModel
	AuthorID uint   `gorm:"index;not null" json:"authorId"`
	Title    string `gorm:"size:200;not null" json:"title"`
	Content  string `gorm:"type:text" json:"content"`
}

func (Post) TableName() string {
	return "posts"
}

// swagger:model Comment
type Comment struct {
	BaseModel
	PostID   uint   `gorm:"index;not null" json:"postId"`
	AuthorID uint   `gorm:"index;not null" json:"authorId"`
	Content  string `gorm:"type:text;not null" json:"content"`
}

func (Comment) TableName() string {
	return "comments"
}
