package service

import (
	"context"
	"mime/multipart"
	"strings"

	"acadlinker_backend/internal/model"
	"acadlinker_backend/internal/repository"
	"acadlinker_backend/internal/util"
)

// MessageService 私信，发送和查看都要求双方是好友
type MessageService struct {
	MsgRepo    *repository.MessageRepository
	FriendRepo *repository.FriendshipRepository
	UserRepo   *repository.UserRepository
	Storage    *StorageService
}

func NewMessageService(msgRepo *repository.MessageRepository, friendRepo *repository.FriendshipRepository, userRepo *repository.UserRepository, storage *StorageService) *MessageService {
	return &MessageService{
		MsgRepo:    msgRepo,
		FriendRepo: friendRepo,
		UserRepo:   userRepo,
		Storage:    storage,
	}
}

// ChatFriend 会话列表项：好友 + 最近一条消息
type ChatFriend struct {
	UserID      string `json:"userId"`
	FullName    string `json:"fullName"`
	ProfilePic  string `json:"profilePic"`
	LastMessage string `json:"lastMessage,omitempty"`
	LastTime    string `json:"lastTime,omitempty"`
}

// MessageView 消息对外视图
type MessageView struct {
	ID        uint   `json:"id"`
	SenderID  string `json:"senderId"`
	Content   string `json:"content"`
	FileURL   string `json:"fileUrl,omitempty"`
	IsMine    bool   `json:"isMine"`
	CreatedAt string `json:"createdAt"`
}

// ChatFriends 私信入口：全部好友及各自最近一条消息
func (s *MessageService) ChatFriends(userID string) ([]ChatFriend, error) {
	friends, err := s.FriendRepo.GetFriends(userID)
	if err != nil {
		return nil, err
	}

	list := make([]ChatFriend, 0, len(friends))
	for _, f := range friends {
		item := ChatFriend{
			UserID:     f.ID,
			FullName:   f.FullName,
			ProfilePic: util.FileURL(f.ProfilePic),
		}
		last, err := s.MsgRepo.GetLastMessage(userID, f.ID)
		if err != nil {
			return nil, err
		}
		if last != nil {
			item.LastMessage = last.Content
			if item.LastMessage == "" && last.FileName != "" {
				item.LastMessage = "[附件]"
			}
			item.LastTime = last.CreatedAt.Format("2006-01-02 15:04:05")
		}
		list = append(list, item)
	}
	return list, nil
}

// Conversation 查看与某好友的完整会话
func (s *MessageService) Conversation(userID, friendID string) ([]MessageView, error) {
	if err := s.requireFriend(userID, friendID); err != nil {
		return nil, err
	}

	msgs, err := s.MsgRepo.GetConversation(userID, friendID)
	if err != nil {
		return nil, err
	}

	views := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, MessageView{
			ID:        m.ID,
			SenderID:  m.SenderID,
			Content:   m.Content,
			FileURL:   util.FileURL(m.FileName),
			IsMine:    m.SenderID == userID,
			CreatedAt: m.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return views, nil
}

// Send 发送私信，文本和附件至少有一个
func (s *MessageService) Send(ctx context.Context, userID, friendID, content string, file *multipart.FileHeader) (*model.Message, error) {
	if err := s.requireFriend(userID, friendID); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" && file == nil {
		return nil, util.ErrEmptyMessage
	}

	msg := &model.Message{
		SenderID:   userID,
		ReceiverID: friendID,
		Content:    content,
	}

	if file != nil {
		name, err := s.Storage.SaveAttachment(ctx, file)
		if err != nil {
			return nil, err
		}
		msg.FileName = name
	}

	if err := s.MsgRepo.Create(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *MessageService) requireFriend(userID, friendID string) error {
	isFriend, err := s.FriendRepo.IsFriend(userID, friendID)
	if err != nil {
		return err
	}
	if !isFriend {
		return util.ErrOnlyFriendChat
	}
	return nil
}
