package controller

import (
	"strconv"
	"time"

	"acadlinker_backend/internal/service"
	"acadlinker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TaskController struct {
	TaskService *service.TaskService
}

func NewTaskController(taskService *service.TaskService) *TaskController {
	return &TaskController{TaskService: taskService}
}

// @Summary 团队任务看板
// @Tags 任务
// @Produce json
// @Security BearerAuth
// @Param teamId path int true "团队ID"
// @Success 200 {object} util.Response
// @Router /api/tasks/team/{teamId} [get]
func (c *TaskController) ListByTeam(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	teamID, err := strconv.ParseUint(ctx.Param("teamId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "非法的团队ID")
		return
	}
	tasks, err := c.TaskService.ListByTeam(me.UserID, uint(teamID))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, tasks)
}

type createTaskRequest struct {
	TeamID       uint    `json:"teamId" binding:"required"`
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description"`
	Priority     string  `json:"priority"`
	AssignedToID *string `json:"assignedToId"`
	DueDate      *string `json:"dueDate"`
}

// @Summary 创建任务
// @Tags 任务
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param task body createTaskRequest true "任务"
// @Success 201 {object} util.Response
// @Router /api/tasks/create [post]
func (c *TaskController) Create(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	var req createTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	in := service.CreateTaskInput{
		TeamID:       req.TeamID,
		Title:        req.Title,
		Description:  req.Description,
		Priority:     req.Priority,
		AssignedToID: req.AssignedToID,
	}
	if req.DueDate != nil {
		due, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			util.BadRequest(ctx, "截止日期格式须为 YYYY-MM-DD")
			return
		}
		in.DueDate = &due
	}

	task, err := c.TaskService.Create(me.UserID, in)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, task)
}

type updateTaskRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Status       *string `json:"status"`
	Priority     *string `json:"priority"`
	AssignedToID *string `json:"assignedToId"`
	DueDate      *string `json:"dueDate"`
}

// @Summary 更新任务
// @Description 状态流转、改负责人、改优先级等，未传的字段不变
// @Tags 任务
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "任务ID"
// @Param task body updateTaskRequest true "更新字段"
// @Success 200 {object} util.Response
// @Router /api/tasks/{id} [patch]
func (c *TaskController) Update(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "非法的任务ID")
		return
	}

	var req updateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	in := service.UpdateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		AssignedToID: req.AssignedToID,
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			util.BadRequest(ctx, "截止日期格式须为 YYYY-MM-DD")
			return
		}
		in.DueDate = &due
	}

	task, err := c.TaskService.Update(me.UserID, uint(id), in)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, task)
}

// @Summary 删除任务
// @Tags 任务
// @Produce json
// @Security BearerAuth
// @Param id path int true "任务ID"
// @Success 200 {object} util.Response
// @Router /api/tasks/{id} [delete]
func (c *TaskController) Delete(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "非法的任务ID")
		return
	}
	if err := c.TaskService.Delete(me.UserID, uint(id)); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
