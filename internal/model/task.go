package model

import "time"

// 任务状态
const (
	TaskTodo       = "todo"
	TaskInProgress = "in_progress"
	TaskDone       = "done"
)

// Task 团队任务，单个可选负责人
type Task struct {
	BaseModel
	TeamID      uint   `gorm:"index;not null" json:"teamId"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"size:20;default:'todo'" json:"status"`
	// low / medium / high
	Priority     string     `gorm:"size:20;default:'medium'" json:"priority"`
	AssignedToID *string    `gorm:"type:varchar(36)" json:"assignedToId"`
	AssignedTo   *User      `gorm:"foreignKey:AssignedToID;references:ID;constraint:false" json:"assignedTo,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
}

func (Task) TableName() string {
	return "tasks"
}
