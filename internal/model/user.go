package model

import (
	"time"
)

// User 用户表。主键是外部身份提供方签发的 UUID 字符串，
// 本地行在首次通过令牌校验时惰性创建（self-healing）。
// swagger:model User
type User struct {
	ID          string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email       string `gorm:"size:120;unique;not null" json:"email"`
	Username    string `gorm:"size:50" json:"username"`
	FullName    string `gorm:"size:100;not null" json:"fullName"`
	MobileNo    string `gorm:"size:15" json:"mobileNo"`
	ProfilePic  string `gorm:"size:500;default:'default.jpg'" json:"profilePic"`
	CoverPhoto  string `gorm:"size:500;default:'cover.jpg'" json:"coverPhoto"`
	Location    string `gorm:"size:100" json:"location"`
	Description string `gorm:"type:text" json:"description"`
	Skills      string `gorm:"size:255" json:"skills"`
	Education   string `gorm:"type:text" json:"education"`

	// 帮助求助模块：声望积分，只会因采纳解答而增加
	ReputationPoints  int        `gorm:"default:0" json:"reputationPoints"`
	LastHelpRequestAt *time.Time `json:"lastHelpRequestAt,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}
