package model

import "time"

// 团队可见性
const (
	TeamPublic  = "public"
	TeamPrivate = "private"
)

// 成员角色
const (
	RoleLeader = "leader"
	RoleMember = "member"
)

// Team 团队表。创建者自动成为 leader。
type Team struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	ProfilePic  string `gorm:"size:255" json:"profilePic"`
	// 关联仓库，形如 "facebook/react"，供 AI 助手拉取最近提交
	GithubRepo string `gorm:"size:255" json:"githubRepo"`
	Privacy    string `gorm:"size:20;default:'public'" json:"privacy"`

	IsHiring           bool   `gorm:"default:false" json:"isHiring"`
	HiringRequirements string `gorm:"type:text" json:"hiringRequirements"`

	CreatorID string `gorm:"type:varchar(36);not null" json:"creatorId"`
}

func (Team) TableName() string {
	return "teams"
}

// TeamMember 成员表，(team_id, user_id) 唯一
type TeamMember struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TeamID   uint      `gorm:"not null;uniqueIndex:uk_team_user" json:"teamId"`
	UserID   string    `gorm:"type:varchar(36);not null;uniqueIndex:uk_team_user" json:"userId"`
	Role     string    `gorm:"size:20;default:'member'" json:"role"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}

func (TeamMember) TableName() string {
	return "team_members"
}

// TeamInvite 队长发出的入队邀请
type TeamInvite struct {
	BaseModel
	TeamID     uint   `gorm:"index;not null" json:"teamId"`
	Team       Team   `gorm:"foreignKey:TeamID;constraint:false" json:"team,omitempty"`
	SenderID   string `gorm:"type:varchar(36);not null" json:"senderId"`
	Sender     User   `gorm:"foreignKey:SenderID;references:ID;constraint:false" json:"sender,omitempty"`
	ReceiverID string `gorm:"type:varchar(36);index;not null" json:"receiverId"`
	Status     string `gorm:"size:20;default:'pending'" json:"status"`
	Message    string `gorm:"type:text" json:"message"`
}

func (TeamInvite) TableName() string {
	return "team_invites"
}

// JoinRequest 用户主动申请加入公开团队
type JoinRequest struct {
	BaseModel
	TeamID  uint   `gorm:"index;not null" json:"teamId"`
	UserID  string `gorm:"type:varchar(36);index;not null" json:"userId"`
	User    User   `gorm:"foreignKey:UserID;references:ID;constraint:false" json:"user,omitempty"`
	Status  string `gorm:"size:20;default:'pending'" json:"status"`
	Message string `gorm:"type:text" json:"message"`
}

func (JoinRequest) TableName() string {
	return "join_requests"
}

// TeamMessage 团队聊天消息
type TeamMessage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TeamID    uint      `gorm:"index;not null" json:"teamId"`
	SenderID  string    `gorm:"type:varchar(36);not null" json:"senderId"`
	Sender    User      `gorm:"foreignKey:SenderID;references:ID;constraint:false" json:"sender,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (TeamMessage) TableName() string {
	return "team_messages"
}
