package repository

import (
	"acadlinker_backend/internal/model"

	"gorm.io/gorm"
)

type AIChatRepository struct {
	DB *gorm.DB
}

func NewAIChatRepository(db *gorm.DB) *AIChatRepository {
	return &AIChatRepository{DB: db}
}

func (r *AIChatRepository) Create(chat *model.TeamAIChat) error {
	return r.DB.Create(chat).Error
}

// CreatePair 用户提问和机器人回复成对落库
func (r *AIChatRepository) CreatePair(question, answer *model.TeamAIChat) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(question).Error; err != nil {
			return err
		}
		return tx.Create(answer).Error
	})
}

// GetHistory 某成员在某团队的 AI 对话历史，时间正序
func (r *AIChatRepository) GetHistory(teamID uint, userID string) ([]model.TeamAIChat, error) {
	var chats []model.TeamAIChat
	err := r.DB.Where("team_id = ? AND user_id = ?", teamID, userID).
		Order("created_at ASC").
		Find(&chats).Error
	return chats, err
}

// GetRecent 最近 limit 条对话，时间正序返回
func (r *AIChatRepository) GetRecent(teamID uint, userID string, limit int) ([]model.TeamAIChat, error) {
	var chats []model.TeamAIChat
	err := r.DB.Where("team_id = ? AND user_id = ?", teamID, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(chats)-1; i < j; i, j = i+1, j-1 {
		chats[i], chats[j] = chats[j], chats[i]
	}
	return chats, nil
}
