package service

import (
	"errors"

	"acadlinker_backend/internal/model"
	"acadlinker_backend/internal/repository"
	"acadlinker_backend/internal/util"
	"acadlinker_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NotificationService 站内通知。Notify 永远不向调用方返回错误：
// 通知只是附带动作，失败不应让主操作跟着失败。
type NotificationService struct {
	Repo *repository.NotificationRepository
}

func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{Repo: repo}
}

// Notify 给用户写一条通知，失败只记日志
func (s *NotificationService) Notify(userID, message, link string) {
	n := &model.Notification{
		UserID:  userID,
		Message: message,
		Link:    link,
	}
	if err := s.Repo.Create(n); err != nil {
		logger.Log.Warn("通知写入失败",
			zap.String("userId", userID),
			zap.String("message", message),
			zap.Error(err))
	}
}

// List 返回全部通知并把未读的置为已读
func (s *NotificationService) List(userID string) ([]model.Notification, error) {
	list, err := s.Repo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.MarkAllRead(userID); err != nil {
		logger.Log.Warn("通知置已读失败", zap.String("userId", userID), zap.Error(err))
	}
	return list, nil
}

func (s *NotificationService) UnreadCount(userID string) (int64, error) {
	return s.Repo.CountUnread(userID)
}

func (s *NotificationService) MarkRead(userID string, id uint) error {
	n, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotificationGone
		}
		return err
	}
	if n.UserID != userID {
		return util.ErrNotificationOwner
	}
	return s.Repo.MarkRead(id)
}

func (s *NotificationService) Delete(userID string, id uint) error {
	n, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotificationGone
		}
		return err
	}
	if n.UserID != userID {
		return util.ErrNotificationOwner
	}
	return s.Repo.Delete(id)
}
