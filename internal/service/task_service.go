package service

import (
	"errors"
	"time"

	"acadlinker_backend/internal/model"
	"acadlinker_backend/internal/repository"
	"acadlinker_backend/internal/util"

	"gorm.io/gorm"
)

// TaskService 团队任务看板，所有操作要求操作者是该团队成员
type TaskService struct {
	TaskRepo *repository.TaskRepository
	TeamRepo *repository.TeamRepository
	Notifier *NotificationService
}

func NewTaskService(taskRepo *repository.TaskRepository, teamRepo *repository.TeamRepository, notifier *NotificationService) *TaskService {
	return &TaskService{
		TaskRepo: taskRepo,
		TeamRepo: teamRepo,
		Notifier: notifier,
	}
}

// CreateTaskInput 建任务参数
type CreateTaskInput struct {
	TeamID       uint
	Title        string
	Description  string
	Priority     string
	AssignedToID *string
	DueDate      *time.Time
}

func validStatus(s string) bool {
	return s == model.TaskTodo || s == model.TaskInProgress || s == model.TaskDone
}

func validPriority(p string) bool {
	return p == "low" || p == "medium" || p == "high"
}

// Create 创建任务，负责人必须也是团队成员
func (s *TaskService) Create(userID string, in CreateTaskInput) (*model.Task, error) {
	if err := s.requireMember(in.TeamID, userID); err != nil {
		return nil, err
	}

	task := &model.Task{
		TeamID:      in.TeamID,
		Title:       in.Title,
		Description: in.Description,
		Status:      model.TaskTodo,
		Priority:    "medium",
		DueDate:     in.DueDate,
	}
	if validPriority(in.Priority) {
		task.Priority = in.Priority
	}

	if in.AssignedToID != nil && *in.AssignedToID != "" {
		if err := s.requireMember(in.TeamID, *in.AssignedToID); err != nil {
			return nil, err
		}
		task.AssignedToID = in.AssignedToID
	}

	if err := s.TaskRepo.Create(task); err != nil {
		return nil, err
	}

	if task.AssignedToID != nil && *task.AssignedToID != userID {
		s.Notifier.Notify(*task.AssignedToID,
			"团队给你分配了新任务："+task.Title,
			"/tasks")
	}
	return task, nil
}

// ListByTeam 任务看板
func (s *TaskService) ListByTeam(userID string, teamID uint) ([]model.Task, error) {
	if err := s.requireMember(teamID, userID); err != nil {
		return nil, err
	}
	return s.TaskRepo.GetByTeam(teamID)
}

// UpdateTaskInput 任务更新，nil 字段不修改
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *string
	Priority     *string
	AssignedToID *string
	DueDate      *time.Time
}

// Update 更新任务（状态流转、改负责人等）
func (s *TaskService) Update(userID string, taskID uint, in UpdateTaskInput) (*model.Task, error) {
	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(task.TeamID, userID); err != nil {
		return nil, err
	}

	if in.Title != nil && *in.Title != "" {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		if !validStatus(*in.Status) {
			return nil, util.ErrInvalidTaskState
		}
		task.Status = *in.Status
	}
	if in.Priority != nil && validPriority(*in.Priority) {
		task.Priority = *in.Priority
	}
	if in.AssignedToID != nil {
		if *in.AssignedToID == "" {
			task.AssignedToID = nil
			task.AssignedTo = nil
		} else {
			if err := s.requireMember(task.TeamID, *in.AssignedToID); err != nil {
				return nil, err
			}
			task.AssignedToID = in.AssignedToID
		}
	}
	if in.DueDate != nil {
		task.DueDate = in.DueDate
	}

	if err := s.TaskRepo.Save(task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete 删除任务
func (s *TaskService) Delete(userID string, taskID uint) error {
	task, err := s.loadTask(taskID)
	if err != nil {
		return err
	}
	if err := s.requireMember(task.TeamID, userID); err != nil {
		return err
	}
	return s.TaskRepo.Delete(taskID)
}

func (s *TaskService) loadTask(taskID uint) (*model.Task, error) {
	task, err := s.TaskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) requireMember(teamID uint, userID string) error {
	isMember, err := s.TeamRepo.IsMember(teamID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return util.ErrNotTeamMember
	}
	return nil
}
