package model

import "time"

// Post 动态帖子
type Post struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      string    `gorm:"type:varchar(36);index;not null" json:"userId"`
	User        User      `gorm:"foreignKey:UserID;references:ID;constraint:false" json:"user,omitempty"`
	Title       string    `gorm:"size:120;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	FileName    string    `gorm:"size:300" json:"fileName"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (Post) TableName() string {
	return "posts"
}
