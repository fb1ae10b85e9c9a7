package model

import "time"

// Message 私信，仅限好友之间
type Message struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID   string    `gorm:"type:varchar(36);index;not null" json:"senderId"`
	ReceiverID string    `gorm:"type:varchar(36);index;not null" json:"receiverId"`
	Content    string    `gorm:"type:text" json:"content"`
	FileName   string    `gorm:"size:300" json:"fileName"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Message) TableName() string {
	return "messages"
}
