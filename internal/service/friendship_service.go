package service

import (
	"errors"
	"fmt"

	"acadlinker_backend/internal/model"
	"acadlinker_backend/internal/repository"
	"acadlinker_backend/internal/util"

	"gorm.io/gorm"
)

// FriendshipService 好友申请状态机与对称好友关系
type FriendshipService struct {
	FriendRepo *repository.FriendshipRepository
	UserRepo   *repository.UserRepository
	Notifier   *NotificationService
}

func NewFriendshipService(friendRepo *repository.FriendshipRepository, userRepo *repository.UserRepository, notifier *NotificationService) *FriendshipService {
	return &FriendshipService{
		FriendRepo: friendRepo,
		UserRepo:   userRepo,
		Notifier:   notifier,
	}
}

// SendRequest 发送好友申请。依次检查：不能加自己 / 已是好友 /
// 自己已有 pending 或被拒绝过 / 对方已向自己发过申请（反向 pending）。
func (s *FriendshipService) SendRequest(senderID, receiverID string) error {
	if senderID == receiverID {
		return util.ErrSelfRequest
	}

	receiver, err := s.UserRepo.FindByID(receiverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}

	isFriend, err := s.FriendRepo.IsFriend(senderID, receiverID)
	if err != nil {
		return err
	}
	if isFriend {
		return util.ErrAlreadyFriends
	}

	// 自己发过的申请：pending 挡重复，rejected 永久拦截
	if prev, err := s.FriendRepo.FindRequestBetween(senderID, receiverID,
		model.RequestPending, model.RequestRejected); err == nil {
		if prev.Status == model.RequestPending {
			return util.ErrRequestPending
		}
		return util.ErrRequestRejected
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	// 反向 pending：提示对方已先发起，不自动建立好友
	if _, err := s.FriendRepo.FindRequestBetween(receiverID, senderID, model.RequestPending); err == nil {
		return util.ErrReversePending
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	req := &model.FriendRequest{SenderID: senderID, ReceiverID: receiverID}
	if err := s.FriendRepo.CreateRequest(req); err != nil {
		return err
	}

	sender, err := s.UserRepo.FindByID(senderID)
	if err == nil {
		s.Notifier.Notify(receiver.ID,
			fmt.Sprintf("%s 向你发来好友申请", sender.FullName),
			"/friends/requests")
	}
	return nil
}

// AcceptRequest 仅接收方可接受。状态变更和两条有向边
// 在一个事务里落库，避免中途失败留下半截状态。
func (s *FriendshipService) AcceptRequest(userID string, requestID uint) error {
	req, err := s.loadPendingRequest(userID, requestID)
	if err != nil {
		return err
	}

	if err := s.FriendRepo.AcceptRequest(req.ID, req.SenderID, req.ReceiverID); err != nil {
		return err
	}

	receiver, err := s.UserRepo.FindByID(userID)
	if err == nil {
		s.Notifier.Notify(req.SenderID,
			fmt.Sprintf("%s 接受了你的好友申请", receiver.FullName),
			fmt.Sprintf("/profile/%s", receiver.ID))
	}
	return nil
}

// RejectRequest 仅接收方可拒绝，拒绝后发送方无法再次发起
func (s *FriendshipService) RejectRequest(userID string, requestID uint) error {
	req, err := s.loadPendingRequest(userID, requestID)
	if err != nil {
		return err
	}
	return s.FriendRepo.UpdateRequestStatus(req.ID, model.RequestRejected)
}

func (s *FriendshipService) loadPendingRequest(userID string, requestID uint) (*model.FriendRequest, error) {
	req, err := s.FriendRepo.GetRequest(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRequestNotFound
		}
		return nil, err
	}
	if req.ReceiverID != userID {
		return nil, util.ErrPermissionDenied
	}
	if req.Status != model.RequestPending {
		return nil, util.ErrRequestHandled
	}
	return req, nil
}

// RemoveFriend 解除好友关系，两个方向一起删
func (s *FriendshipService) RemoveFriend(userID, friendID string) error {
	isFriend, err := s.FriendRepo.IsFriend(userID, friendID)
	if err != nil {
		return err
	}
	if !isFriend {
		return util.ErrNotFriends
	}
	return s.FriendRepo.DeleteFriendship(userID, friendID)
}

func (s *FriendshipService) PendingRequests(userID string) ([]model.FriendRequest, error) {
	return s.FriendRepo.GetPendingRequests(userID)
}

func (s *FriendshipService) Friends(userID string) ([]model.User, error) {
	return s.FriendRepo.GetFriends(userID)
}

func (s *FriendshipService) IsFriend(userID, otherID string) (bool, error) {
	return s.FriendRepo.IsFriend(userID, otherID)
}

// SearchFriends 在好友内按名字过滤（空关键字返回全部）
func (s *FriendshipService) SearchFriends(userID, query string) ([]model.User, error) {
	friends, err := s.FriendRepo.GetFriends(userID)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return friends, nil
	}
	matched := make([]model.User, 0, len(friends))
	for _, f := range friends {
		if util.ContainsFold(f.FullName, query) || util.ContainsFold(f.Email, query) {
			matched = append(matched, f)
		}
	}
	return matched, nil
}
