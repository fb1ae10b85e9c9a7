package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"acadlinker_backend/internal/model"
	"acadlinker_backend/internal/repository"
	"acadlinker_backend/internal/util"

	"gorm.io/gorm"
)

// TeamService 团队工作区：团队 CRUD、成员、邀请、入队申请、团队聊天
type TeamService struct {
	TeamRepo *repository.TeamRepository
	UserRepo *repository.UserRepository
	Storage  *StorageService
	Notifier *NotificationService
}

func NewTeamService(teamRepo *repository.TeamRepository, userRepo *repository.UserRepository, storage *StorageService, notifier *NotificationService) *TeamService {
	return &TeamService{
		TeamRepo: teamRepo,
		UserRepo: userRepo,
		Storage:  storage,
		Notifier: notifier,
	}
}

// CreateTeamInput 建团参数
type CreateTeamInput struct {
	Name               string
	Description        string
	GithubRepo         string
	Privacy            string
	IsHiring           bool
	HiringRequirements string
	ProfilePic         *multipart.FileHeader
}

// Create 创建团队，创建者自动成为队长
func (s *TeamService) Create(ctx context.Context, userID string, in CreateTeamInput) (*model.Team, error) {
	privacy := in.Privacy
	if privacy != model.TeamPrivate {
		privacy = model.TeamPublic
	}

	team := &model.Team{
		Name:               strings.TrimSpace(in.Name),
		Description:        in.Description,
		GithubRepo:         strings.TrimSpace(in.GithubRepo),
		Privacy:            privacy,
		IsHiring:           in.IsHiring,
		HiringRequirements: in.HiringRequirements,
		CreatorID:          userID,
	}

	if in.ProfilePic != nil {
		name, err := s.Storage.SaveImage(ctx, in.ProfilePic)
		if err != nil {
			return nil, err
		}
		team.ProfilePic = name
	}

	if err := s.TeamRepo.CreateWithLeader(team); err != nil {
		return nil, err
	}
	return team, nil
}

// TeamSummary 团队列表项
type TeamSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ProfilePic  string `json:"profilePic"`
	Privacy     string `json:"privacy"`
	IsHiring    bool   `json:"isHiring"`
	MemberCount int64  `json:"memberCount"`
	MyRole      string `json:"myRole,omitempty"`
}

// ListPublic 公开团队列表
func (s *TeamService) ListPublic(viewerID string) ([]TeamSummary, error) {
	teams, err := s.TeamRepo.ListPublic()
	if err != nil {
		return nil, err
	}
	return s.toSummaries(teams, viewerID)
}

// MyTeams 我加入的团队（含私有）
func (s *TeamService) MyTeams(userID string) ([]TeamSummary, error) {
	teams, err := s.TeamRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.toSummaries(teams, userID)
}

func (s *TeamService) toSummaries(teams []model.Team, viewerID string) ([]TeamSummary, error) {
	list := make([]TeamSummary, 0, len(teams))
	for i := range teams {
		t := &teams[i]
		count, err := s.TeamRepo.CountMembers(t.ID)
		if err != nil {
			return nil, err
		}
		item := TeamSummary{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			ProfilePic:  util.FileURL(t.ProfilePic),
			Privacy:     t.Privacy,
			IsHiring:    t.IsHiring,
			MemberCount: count,
		}
		if m, err := s.TeamRepo.GetMember(t.ID, viewerID); err == nil {
			item.MyRole = m.Role
		}
		list = append(list, item)
	}
	return list, nil
}

// MemberView 成员视图
type MemberView struct {
	UserID     string `json:"userId"`
	FullName   string `json:"fullName"`
	ProfilePic string `json:"profilePic"`
	Skills     string `json:"skills"`
	Role       string `json:"role"`
	JoinedAt   string `json:"joinedAt"`
}

// TeamDetail 团队详情
type TeamDetail struct {
	ID                 uint                `json:"id"`
	Name               string              `json:"name"`
	Description        string              `json:"description"`
	ProfilePic         string              `json:"profilePic"`
	GithubRepo         string              `json:"githubRepo,omitempty"`
	Privacy            string              `json:"privacy"`
	IsHiring           bool                `json:"isHiring"`
	HiringRequirements string              `json:"hiringRequirements,omitempty"`
	CreatorID          string              `json:"creatorId"`
	Members            []MemberView        `json:"members"`
	JoinRequests       []model.JoinRequest `json:"joinRequests,omitempty"`
	MyRole             string              `json:"myRole,omitempty"`
}

// Detail 团队详情。私有团队仅成员可见；待处理的入队申请只给队长看。
func (s *TeamService) Detail(viewerID string, teamID uint) (*TeamDetail, error) {
	team, err := s.loadTeam(teamID)
	if err != nil {
		return nil, err
	}

	myRole := ""
	if m, err := s.TeamRepo.GetMember(teamID, viewerID); err == nil {
		myRole = m.Role
	}
	if team.Privacy == model.TeamPrivate && myRole == "" {
		return nil, util.ErrPrivateTeam
	}

	members, users, err := s.TeamRepo.GetMembersWithUser(teamID)
	if err != nil {
		return nil, err
	}
	userByID := make(map[string]*model.User, len(users))
	for i := range users {
		userByID[users[i].ID] = &users[i]
	}

	memberViews := make([]MemberView, 0, len(members))
	for _, m := range members {
		mv := MemberView{
			UserID:   m.UserID,
			Role:     m.Role,
			JoinedAt: m.JoinedAt.Format("2006-01-02"),
		}
		if u, ok := userByID[m.UserID]; ok {
			mv.FullName = u.FullName
			mv.ProfilePic = util.FileURL(u.ProfilePic)
			mv.Skills = u.Skills
		}
		memberViews = append(memberViews, mv)
	}

	detail := &TeamDetail{
		ID:                 team.ID,
		Name:               team.Name,
		Description:        team.Description,
		ProfilePic:         util.FileURL(team.ProfilePic),
		GithubRepo:         team.GithubRepo,
		Privacy:            team.Privacy,
		IsHiring:           team.IsHiring,
		HiringRequirements: team.HiringRequirements,
		CreatorID:          team.CreatorID,
		Members:            memberViews,
		MyRole:             myRole,
	}

	if myRole == model.RoleLeader {
		reqs, err := s.TeamRepo.GetPendingJoinRequests(teamID)
		if err != nil {
			return nil, err
		}
		detail.JoinRequests = reqs
	}
	return detail, nil
}

// EditTeamInput 编辑团队，零值字段不修改（IsHiring 用指针区分未传）
type EditTeamInput struct {
	Name               string
	Description        string
	GithubRepo         *string
	Privacy            string
	IsHiring           *bool
	HiringRequirements *string
	ProfilePic         *multipart.FileHeader
}

// Edit 仅队长可编辑团队资料
func (s *TeamService) Edit(ctx context.Context, userID string, teamID uint, in EditTeamInput) (*model.Team, error) {
	team, err := s.loadTeam(teamID)
	if err != nil {
		return nil, err
	}
	if err := s.requireLeader(teamID, userID); err != nil {
		return nil, err
	}

	if in.Name != "" {
		team.Name = strings.TrimSpace(in.Name)
	}
	if in.Description != "" {
		team.Description = in.Description
	}
	if in.GithubRepo != nil {
		team.GithubRepo = strings.TrimSpace(*in.GithubRepo)
	}
	if in.Privacy == model.TeamPublic || in.Privacy == model.TeamPrivate {
		team.Privacy = in.Privacy
	}
	if in.IsHiring != nil {
		team.IsHiring = *in.IsHiring
	}
	if in.HiringRequirements != nil {
		team.HiringRequirements = *in.HiringRequirements
	}
	if in.ProfilePic != nil {
		name, err := s.Storage.SaveImage(ctx, in.ProfilePic)
		if err != nil {
			return nil, err
		}
		team.ProfilePic = name
	}

	if err := s.TeamRepo.Save(team); err != nil {
		return nil, err
	}
	return team, nil
}

// RequestJoin 申请加入公开团队
func (s *TeamService) RequestJoin(userID string, teamID uint, message string) error {
	team, err := s.loadTeam(teamID)
	if err != nil {
		return err
	}
	if team.Privacy == model.TeamPrivate {
		return util.ErrPrivateTeam
	}

	isMember, err := s.TeamRepo.IsMember(teamID, userID)
	if err != nil {
		return err
	}
	if isMember {
		return util.ErrAlreadyMember
	}

	if _, err := s.TeamRepo.FindPendingJoinRequest(teamID, userID); err == nil {
		return util.ErrInvitePending
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	req := &model.JoinRequest{TeamID: teamID, UserID: userID, Message: message}
	if err := s.TeamRepo.CreateJoinRequest(req); err != nil {
		return err
	}

	if user, err := s.UserRepo.FindByID(userID); err == nil {
		leaderIDs, _ := s.leaderIDs(teamID)
		for _, lid := range leaderIDs {
			s.Notifier.Notify(lid,
				fmt.Sprintf("%s 申请加入团队「%s」", user.FullName, team.Name),
				fmt.Sprintf("/teams/%d", team.ID))
		}
	}
	return nil
}

// RespondJoinRequest 队长处理入队申请
func (s *TeamService) RespondJoinRequest(userID string, requestID uint, accept bool) error {
	req, err := s.TeamRepo.GetJoinRequest(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrRequestNotFound
		}
		return err
	}
	if req.Status != model.RequestPending {
		return util.ErrRequestHandled
	}
	if err := s.requireLeader(req.TeamID, userID); err != nil {
		return err
	}

	if !accept {
		return s.TeamRepo.UpdateJoinRequestStatus(req.ID, model.RequestRejected)
	}

	if err := s.TeamRepo.UpdateJoinRequestStatus(req.ID, model.RequestAccepted); err != nil {
		return err
	}
	if err := s.addMember(req.TeamID, req.UserID); err != nil {
		return err
	}

	if team, err := s.TeamRepo.FindByID(req.TeamID); err == nil {
		s.Notifier.Notify(req.UserID,
			fmt.Sprintf("你加入团队「%s」的申请已通过", team.Name),
			fmt.Sprintf("/teams/%d", team.ID))
	}
	return nil
}

// Invite 队长邀请用户入队
func (s *TeamService) Invite(userID string, teamID uint, receiverID, message string) error {
	team, err := s.loadTeam(teamID)
	if err != nil {
		return err
	}
	if err := s.requireLeader(teamID, userID); err != nil {
		return err
	}

	if _, err := s.UserRepo.FindByID(receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}

	isMember, err := s.TeamRepo.IsMember(teamID, receiverID)
	if err != nil {
		return err
	}
	if isMember {
		return util.ErrAlreadyMember
	}

	if _, err := s.TeamRepo.FindPendingInvite(teamID, receiverID); err == nil {
		return util.ErrInvitePending
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	inv := &model.TeamInvite{
		TeamID:     teamID,
		SenderID:   userID,
		ReceiverID: receiverID,
		Message:    message,
	}
	if err := s.TeamRepo.CreateInvite(inv); err != nil {
		return err
	}

	s.Notifier.Notify(receiverID,
		fmt.Sprintf("团队「%s」邀请你加入", team.Name),
		"/teams/my-invites")
	return nil
}

// MyInvites 我收到的待处理邀请
func (s *TeamService) MyInvites(userID string) ([]model.TeamInvite, error) {
	return s.TeamRepo.GetPendingInvites(userID)
}

// RespondInvite 被邀请者接受或拒绝
func (s *TeamService) RespondInvite(userID string, inviteID uint, accept bool) error {
	inv, err := s.TeamRepo.GetInvite(inviteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrRequestNotFound
		}
		return err
	}
	if inv.ReceiverID != userID {
		return util.ErrPermissionDenied
	}
	if inv.Status != model.RequestPending {
		return util.ErrRequestHandled
	}

	if !accept {
		return s.TeamRepo.UpdateInviteStatus(inv.ID, model.RequestRejected)
	}

	if err := s.TeamRepo.UpdateInviteStatus(inv.ID, model.RequestAccepted); err != nil {
		return err
	}
	if err := s.addMember(inv.TeamID, userID); err != nil {
		return err
	}

	if user, err := s.UserRepo.FindByID(userID); err == nil {
		s.Notifier.Notify(inv.SenderID,
			fmt.Sprintf("%s 接受了你的团队邀请", user.FullName),
			fmt.Sprintf("/teams/%d", inv.TeamID))
	}
	return nil
}

// RemoveMember 队长移除成员，不能移除自己
func (s *TeamService) RemoveMember(userID string, teamID uint, targetID string) error {
	if err := s.requireLeader(teamID, userID); err != nil {
		return err
	}
	if userID == targetID {
		return util.ErrRemoveSelf
	}

	isMember, err := s.TeamRepo.IsMember(teamID, targetID)
	if err != nil {
		return err
	}
	if !isMember {
		return util.ErrNotTeamMember
	}

	if err := s.TeamRepo.RemoveMember(teamID, targetID); err != nil {
		return err
	}

	if team, err := s.TeamRepo.FindByID(teamID); err == nil {
		s.Notifier.Notify(targetID,
			fmt.Sprintf("你已被移出团队「%s」", team.Name), "/teams")
	}
	return nil
}

// TeamMessageView 团队聊天消息视图
type TeamMessageView struct {
	ID         uint   `json:"id"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	SenderPic  string `json:"senderPic"`
	Content    string `json:"content"`
	IsMine     bool   `json:"isMine"`
	CreatedAt  string `json:"createdAt"`
}

// ChatHistory 团队聊天记录，仅成员可见
func (s *TeamService) ChatHistory(userID string, teamID uint) ([]TeamMessageView, error) {
	if err := s.requireMember(teamID, userID); err != nil {
		return nil, err
	}

	msgs, err := s.TeamRepo.GetMessages(teamID)
	if err != nil {
		return nil, err
	}

	views := make([]TeamMessageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, TeamMessageView{
			ID:         m.ID,
			SenderID:   m.SenderID,
			SenderName: m.Sender.FullName,
			SenderPic:  util.FileURL(m.Sender.ProfilePic),
			Content:    m.Content,
			IsMine:     m.SenderID == userID,
			CreatedAt:  m.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return views, nil
}

// SendChat 发团队消息，仅成员可发
func (s *TeamService) SendChat(userID string, teamID uint, content string) (*model.TeamMessage, error) {
	if err := s.requireMember(teamID, userID); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, util.ErrEmptyMessage
	}

	msg := &model.TeamMessage{TeamID: teamID, SenderID: userID, Content: content}
	if err := s.TeamRepo.CreateMessage(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// --- 内部辅助 ---

func (s *TeamService) loadTeam(teamID uint) (*model.Team, error) {
	team, err := s.TeamRepo.FindByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (s *TeamService) requireMember(teamID uint, userID string) error {
	isMember, err := s.TeamRepo.IsMember(teamID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return util.ErrNotTeamMember
	}
	return nil
}

func (s *TeamService) requireLeader(teamID uint, userID string) error {
	m, err := s.TeamRepo.GetMember(teamID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotTeamMember
		}
		return err
	}
	if m.Role != model.RoleLeader {
		return util.ErrNotTeamLeader
	}
	return nil
}

func (s *TeamService) addMember(teamID uint, userID string) error {
	return s.TeamRepo.AddMember(&model.TeamMember{
		TeamID: teamID,
		UserID: userID,
		Role:   model.RoleMember,
	})
}

func (s *TeamService) leaderIDs(teamID uint) ([]string, error) {
	members, _, err := s.TeamRepo.GetMembersWithUser(teamID)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, m := range members {
		if m.Role == model.RoleLeader {
			ids = append(ids, m.UserID)
		}
	}
	return ids, nil
}
