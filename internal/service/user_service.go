package service

import (
	"context"
	"errors"
	"mime/multipart"

	"acadlinker_backend/internal/model"
	"acadlinker_backend/internal/repository"
	"acadlinker_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo   *repository.UserRepository
	FriendRepo *repository.FriendshipRepository
	Storage    *StorageService
}

func NewUserService(userRepo *repository.UserRepository, friendRepo *repository.FriendshipRepository, storage *StorageService) *UserService {
	return &UserService{
		UserRepo:   userRepo,
		FriendRepo: friendRepo,
		Storage:    storage,
	}
}

// ProfileView 用户主页。联系方式只对本人和好友可见，
// 其余访客拿到的是打码后的占位值。
type ProfileView struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	FullName         string `json:"fullName"`
	MobileNo         string `json:"mobileNo"`
	ProfilePic       string `json:"profilePic"`
	CoverPhoto       string `json:"coverPhoto"`
	Location         string `json:"location"`
	Description      string `json:"description"`
	Skills           string `json:"skills"`
	Education        string `json:"education"`
	ReputationPoints int    `json:"reputationPoints"`

	IsSelf          bool  `json:"isSelf"`
	IsFriend        bool  `json:"isFriend"`
	RequestSent     bool  `json:"requestSent"`
	RequestReceived bool  `json:"requestReceived"`
	RequestID       *uint `json:"requestId,omitempty"`
}

// Profile 查看某用户主页，并给出与访问者的关系状态
func (s *UserService) Profile(viewerID, targetID string) (*ProfileView, error) {
	user, err := s.UserRepo.FindByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	view := &ProfileView{
		ID:               user.ID,
		Email:            user.Email,
		FullName:         user.FullName,
		MobileNo:         user.MobileNo,
		ProfilePic:       util.FileURL(user.ProfilePic),
		CoverPhoto:       util.FileURL(user.CoverPhoto),
		Location:         user.Location,
		Description:      user.Description,
		Skills:           user.Skills,
		Education:        user.Education,
		ReputationPoints: user.ReputationPoints,
		IsSelf:           viewerID == targetID,
	}

	if view.IsSelf {
		return view, nil
	}

	isFriend, err := s.FriendRepo.IsFriend(viewerID, targetID)
	if err != nil {
		return nil, err
	}
	view.IsFriend = isFriend

	if !isFriend {
		// 联系方式打码
		view.Email = "hidden"
		view.MobileNo = "hidden"

		if _, err := s.FriendRepo.FindRequestBetween(viewerID, targetID, model.RequestPending); err == nil {
			view.RequestSent = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		if req, err := s.FriendRepo.FindRequestBetween(targetID, viewerID, model.RequestPending); err == nil {
			view.RequestReceived = true
			view.RequestID = &req.ID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return view, nil
}

// EditProfileInput 资料编辑，零值字段表示不修改
type EditProfileInput struct {
	FullName    string
	MobileNo    string
	Location    string
	Description string
	Skills      string
	Education   string
	ProfilePic  *multipart.FileHeader
	CoverPhoto  *multipart.FileHeader
}

func (s *UserService) EditProfile(ctx context.Context, userID string, in EditProfileInput) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	if in.FullName != "" {
		user.FullName = in.FullName
	}
	if in.MobileNo != "" {
		user.MobileNo = in.MobileNo
	}
	if in.Location != "" {
		user.Location = in.Location
	}
	if in.Description != "" {
		user.Description = in.Description
	}
	if in.Skills != "" {
		user.Skills = in.Skills
	}
	if in.Education != "" {
		user.Education = in.Education
	}

	if in.ProfilePic != nil {
		name, err := s.Storage.SaveImage(ctx, in.ProfilePic)
		if err != nil {
			return nil, err
		}
		user.ProfilePic = name
	}
	if in.CoverPhoto != nil {
		name, err := s.Storage.SaveImage(ctx, in.CoverPhoto)
		if err != nil {
			return nil, err
		}
		user.CoverPhoto = name
	}

	if err := s.UserRepo.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SearchResult 全局搜索结果项
type SearchResult struct {
	ID         string `json:"id"`
	FullName   string `json:"fullName"`
	ProfilePic string `json:"profilePic"`
	Location   string `json:"location"`
	Skills     string `json:"skills"`
	IsFriend   bool   `json:"isFriend"`
}

// Search 按姓名/邮箱/技能搜索用户，结果不含自己
func (s *UserService) Search(selfID, query string) ([]SearchResult, error) {
	users, err := s.UserRepo.SearchUsers(selfID, query, 20)
	if err != nil {
		return nil, err
	}

	friendIDs, err := s.FriendRepo.GetFriendIDs(selfID)
	if err != nil {
		return nil, err
	}
	friendSet := make(map[string]bool, len(friendIDs))
	for _, id := range friendIDs {
		friendSet[id] = true
	}

	results := make([]SearchResult, 0, len(users))
	for _, u := range users {
		results = append(results, SearchResult{
			ID:         u.ID,
			FullName:   u.FullName,
			ProfilePic: util.FileURL(u.ProfilePic),
			Location:   u.Location,
			Skills:     u.Skills,
			IsFriend:   friendSet[u.ID],
		})
	}
	return results, nil
}
