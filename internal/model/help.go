package model

import "time"

// 求助状态
const (
	HelpOpen   = "open"
	HelpSolved = "solved"
	HelpClosed = "closed"
)

// HelpRequest 求助工单。约束：同一用户同一时刻最多一条 open 状态的求助。
type HelpRequest struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      string `gorm:"type:varchar(36);index;not null" json:"userId"`
	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	GithubLink  string `gorm:"size:500" json:"githubLink"`
	// 报错截图，创建时必传
	ImageURL string `gorm:"size:500" json:"imageUrl"`
	// 逗号分隔，如 "python,react,sql"
	Tags      string    `gorm:"size:200;not null" json:"tags"`
	Status    string    `gorm:"size:20;default:'open';index" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (HelpRequest) TableName() string {
	return "help_requests"
}

// Solution 解答。采纳是单向终态：求助转为 solved，解答者 +10 声望。
type Solution struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RequestID   uint      `gorm:"index;not null" json:"requestId"`
	SolverID    string    `gorm:"type:varchar(36);not null" json:"solverId"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	CodeSnippet string    `gorm:"type:text" json:"codeSnippet"`
	IsAccepted  bool      `gorm:"default:false" json:"isAccepted"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Solution) TableName() string {
	return "solutions"
}
