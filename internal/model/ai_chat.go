package model

import "time"

// TeamAIChat AI 助手对话记录，按 (team, user) 维度保存
type TeamAIChat struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TeamID    uint      `gorm:"index;not null" json:"teamId"`
	UserID    string    `gorm:"type:varchar(36);index;not null" json:"userId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	IsBot     bool      `gorm:"default:false" json:"isBot"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (TeamAIChat) TableName() string {
	return "team_ai_chats"
}
