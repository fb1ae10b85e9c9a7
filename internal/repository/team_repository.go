package repository

import (
	"acadlinker_backend/internal/model"

	"gorm.io/gorm"
)

type TeamRepository struct {
	DB *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{DB: db}
}

// CreateWithLeader 建团事务：团队和队长成员记录一起写入
func (r *TeamRepository) CreateWithLeader(team *model.Team) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}
		member := model.TeamMember{
			TeamID: team.ID,
			UserID: team.CreatorID,
			Role:   model.RoleLeader,
		}
		return tx.Create(&member).Error
	})
}

func (r *TeamRepository) FindByID(id uint) (*model.Team, error) {
	var team model.Team
	err := r.DB.First(&team, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *TeamRepository) Save(team *model.Team) error {
	return r.DB.Save(team).Error
}

// ListPublic 公开团队列表，新建的在前
func (r *TeamRepository) ListPublic() ([]model.Team, error) {
	var teams []model.Team
	err := r.DB.Where("privacy = ?", model.TeamPublic).
		Order("created_at DESC").
		Find(&teams).Error
	return teams, err
}

// ListByUser 某用户已加入的团队
func (r *TeamRepository) ListByUser(userID string) ([]model.Team, error) {
	var teams []model.Team
	err := r.DB.Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ?", userID).
		Order("teams.created_at DESC").
		Find(&teams).Error
	return teams, err
}

func (r *TeamRepository) GetMember(teamID uint, userID string) (*model.TeamMember, error) {
	var m model.TeamMember
	err := r.DB.Where("team_id = ? AND user_id = ?", teamID, userID).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *TeamRepository) IsMember(teamID uint, userID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *TeamRepository) AddMember(m *model.TeamMember) error {
	return r.DB.Create(m).Error
}

func (r *TeamRepository) RemoveMember(teamID uint, userID string) error {
	return r.DB.Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&model.TeamMember{}).Error
}

// GetMembersWithUser 成员列表及对应用户信息，队长在前
func (r *TeamRepository) GetMembersWithUser(teamID uint) ([]model.TeamMember, []model.User, error) {
	var members []model.TeamMember
	err := r.DB.Where("team_id = ?", teamID).
		Order("CASE WHEN role = 'leader' THEN 0 ELSE 1 END, joined_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, nil, err
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	var users []model.User
	if len(ids) > 0 {
		if err := r.DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
			return nil, nil, err
		}
	}
	return members, users, nil
}

func (r *TeamRepository) CountMembers(teamID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.TeamMember{}).Where("team_id = ?", teamID).Count(&count).Error
	return count, err
}

// --- 邀请 ---

func (r *TeamRepository) CreateInvite(inv *model.TeamInvite) error {
	return r.DB.Create(inv).Error
}

func (r *TeamRepository) GetInvite(id uint) (*model.TeamInvite, error) {
	var inv model.TeamInvite
	err := r.DB.First(&inv, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *TeamRepository) FindPendingInvite(teamID uint, receiverID string) (*model.TeamInvite, error) {
	var inv model.TeamInvite
	err := r.DB.Where("team_id = ? AND receiver_id = ? AND status = ?",
		teamID, receiverID, model.RequestPending).First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *TeamRepository) GetPendingInvites(receiverID string) ([]model.TeamInvite, error) {
	var invites []model.TeamInvite
	err := r.DB.Preload("Team").Preload("Sender").
		Where("receiver_id = ? AND status = ?", receiverID, model.RequestPending).
		Order("created_at DESC").
		Find(&invites).Error
	return invites, err
}

func (r *TeamRepository) UpdateInviteStatus(id uint, status string) error {
	return r.DB.Model(&model.TeamInvite{}).Where("id = ?", id).Update("status", status).Error
}

// --- 入队申请 ---

func (r *TeamRepository) CreateJoinRequest(req *model.JoinRequest) error {
	return r.DB.Create(req).Error
}

func (r *TeamRepository) GetJoinRequest(id uint) (*model.JoinRequest, error) {
	var req model.JoinRequest
	err := r.DB.First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *TeamRepository) FindPendingJoinRequest(teamID uint, userID string) (*model.JoinRequest, error) {
	var req model.JoinRequest
	err := r.DB.Where("team_id = ? AND user_id = ? AND status = ?",
		teamID, userID, model.RequestPending).First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *TeamRepository) GetPendingJoinRequests(teamID uint) ([]model.JoinRequest, error) {
	var reqs []model.JoinRequest
	err := r.DB.Preload("User").
		Where("team_id = ? AND status = ?", teamID, model.RequestPending).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *TeamRepository) UpdateJoinRequestStatus(id uint, status string) error {
	return r.DB.Model(&model.JoinRequest{}).Where("id = ?", id).Update("status", status).Error
}

// --- 团队聊天 ---

func (r *TeamRepository) CreateMessage(msg *model.TeamMessage) error {
	return r.DB.Create(msg).Error
}

func (r *TeamRepository) GetMessages(teamID uint) ([]model.TeamMessage, error) {
	var msgs []model.TeamMessage
	err := r.DB.Preload("Sender").
		Where("team_id = ?", teamID).
		Order("created_at ASC").
		Find(&msgs).Error
	return msgs, err
}

// GetRecentMessages 最近 N 条团队消息，时间正序返回
func (r *TeamRepository) GetRecentMessages(teamID uint, limit int) ([]model.TeamMessage, error) {
	var msgs []model.TeamMessage
	err := r.DB.Preload("Sender").
		Where("team_id = ?", teamID).
		Order("created_at DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	// 反转成正序
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
