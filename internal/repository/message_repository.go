package repository

import (
	"acadlinker_backend/internal/model"

	"gorm.io/gorm"
)

type MessageRepository struct {
	DB *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

func (r *MessageRepository) Create(msg *model.Message) error {
	return r.DB.Create(msg).Error
}

// GetConversation 双向取两人之间的消息，按时间正序
func (r *MessageRepository) GetConversation(userID, friendID string) ([]model.Message, error) {
	var msgs []model.Message
	err := r.DB.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userID, friendID, friendID, userID,
	).Order("created_at ASC").Find(&msgs).Error
	return msgs, err
}

// GetLastMessage 两人之间最近一条消息，没有则返回 nil
func (r *MessageRepository) GetLastMessage(userID, friendID string) (*model.Message, error) {
	var msg model.Message
	err := r.DB.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userID, friendID, friendID, userID,
	).Order("created_at DESC").First(&msg).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}
