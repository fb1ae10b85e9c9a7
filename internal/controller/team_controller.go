package controller

import (
	"strconv"

	"acadlinker_backend/internal/service"
	"acadlinker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TeamController struct {
	TeamService *service.TeamService
}

func NewTeamController(teamService *service.TeamService) *TeamController {
	return &TeamController{TeamService: teamService}
}

func parseTeamID(ctx *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "非法的团队ID")
		return 0, false
	}
	return uint(id), true
}

// @Summary 创建团队
// @Description 创建者自动成为队长
// @Tags 团队
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name formData string true "团队名称"
// @Param description formData string false "简介"
// @Param github_repo formData string false "关联仓库，形如 owner/repo"
// @Param privacy formData string false "public / private" default(public)
// @Param is_hiring formData bool false "是否招募"
// @Param hiring_requirements formData string false "招募要求"
// @Param profile_pic formData file false "团队头像"
// @Success 201 {object} util.Response
// @Router /api/teams/create [post]
func (c *TeamController) Create(ctx *gin.Context) {
	me := util.GetIdentity(ctx)

	in := service.CreateTeamInput{
		Name:               ctx.PostForm("name"),
		Description:        ctx.PostForm("description"),
		GithubRepo:         ctx.PostForm("github_repo"),
		Privacy:            ctx.PostForm("privacy"),
		IsHiring:           ctx.PostForm("is_hiring") == "true",
		HiringRequirements: ctx.PostForm("hiring_requirements"),
	}
	if in.Name == "" {
		util.BadRequest(ctx, "团队名称不能为空")
		return
	}
	if f, err := ctx.FormFile("profile_pic"); err == nil {
		in.ProfilePic = f
	}

	team, err := c.TeamService.Create(ctx.Request.Context(), me.UserID, in)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, team)
}

// @Summary 公开团队列表
// @Tags 团队
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/teams [get]
func (c *TeamController) ListPublic(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	teams, err := c.TeamService.ListPublic(me.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, teams)
}

// @Summary 我加入的团队
// @Tags 团队
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/teams/my [get]
func (c *TeamController) MyTeams(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	teams, err := c.TeamService.MyTeams(me.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, teams)
}

// @Summary 团队详情
// @Description 私有团队仅成员可见，待处理入队申请只返回给队长
// @Tags 团队
// @Produce json
// @Security BearerAuth
// @Param id path int true "团队ID"
// @Success 200 {object} util.Response
// @Router /api/teams/{id} [get]
func (c *TeamController) Detail(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	teamID, ok := parseTeamID(ctx, "id")
	if !ok {
		return
	}
	detail, err := c.TeamService.Detail(me.UserID, teamID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// @Summary 编辑团队资料
// @Description 仅队长可编辑
// @Tags 团队
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "团队ID"
// @Success 200 {object} util.Response
// @Router /api/teams/{id}/edit [put]
func (c *TeamController) Edit(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	teamID, ok := parseTeamID(ctx, "id")
	if !ok {
		return
	}

	in := service.EditTeamInput{
		Name:        ctx.PostForm("name"),
		Description: ctx.PostForm("description"),
		Privacy:     ctx.PostForm("privacy"),
	}
	if v, exists := ctx.GetPostForm("github_repo"); exists {
		in.GithubRepo = &v
	}
	if v, exists := ctx.GetPostForm("is_hiring"); exists {
		b := v == "true"
		in.IsHiring = &b
	}
	if v, exists := ctx.GetPostForm("hiring_requirements"); exists {
		in.HiringRequirements = &v
	}
	if f, err := ctx.FormFile("profile_pic"); err == nil {
		in.ProfilePic = f
	}

	team, err := c.TeamService.Edit(ctx.Request.Context(), me.UserID, teamID, in)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, team)
}

type joinTeamRequest struct {
	TeamID  uint   `json:"teamId" binding:"required"`
	Message string `json:"message"`
}

// @Summary 申请加入团队
// @Tags 团队
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body joinTeamRequest true "申请"
// @Success 200 {object} util.Response
// @Router /api/teams/join-request [post]
func (c *TeamController) RequestJoin(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	var req joinTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.TeamService.RequestJoin(me.UserID, req.TeamID, req.Message); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"requested": true})
}

type respondRequest struct {
	RequestID uint `json:"requestId" binding:"required"`
	Accept    bool `json:"accept"`
}

// @Summary 处理入队申请
// @Description 仅队长可处理
// @Tags 团队
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body respondRequest true "处理结果"
// @Success 200 {object} util.Response
// @Router /api/teams/respond-request [post]
func (c *TeamController) RespondJoinRequest(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	var req respondRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.TeamService.RespondJoinRequest(me.UserID, req.RequestID, req.Accept); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"handled": true})
}

type inviteRequest struct {
	TeamID     uint   `json:"teamId" binding:"required"`
	ReceiverID string `json:"receiverId" binding:"required"`
	Message    string `json:"message"`
}

// @Summary 邀请用户入队
// @Description 仅队长可邀请
// @Tags 团队
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param invite body inviteRequest true "邀请"
// @Success 200 {object} util.Response
// @Router /api/teams/invite [post]
func (c *TeamController) Invite(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	var req inviteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.TeamService.Invite(me.UserID, req.TeamID, req.ReceiverID, req.Message); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"invited": true})
}

// @Summary 我收到的团队邀请
// @Tags 团队
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/teams/my-invites [get]
func (c *TeamController) MyInvites(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	invites, err := c.TeamService.MyInvites(me.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, invites)
}

type respondInviteRequest struct {
	InviteID uint `json:"inviteId" binding:"required"`
	Accept   bool `json:"accept"`
}

// @Summary 处理团队邀请
// @Tags 团队
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param invite body respondInviteRequest true "处理结果"
// @Success 200 {object} util.Response
// @Router /api/teams/respond-invite [post]
func (c *TeamController) RespondInvite(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	var req respondInviteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.TeamService.RespondInvite(me.UserID, req.InviteID, req.Accept); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"handled": true})
}

// @Summary 移除团队成员
// @Description 仅队长可移除，不能移除自己
// @Tags 团队
// @Produce json
// @Security BearerAuth
// @Param id path int true "团队ID"
// @Param userId path string true "成员用户ID"
// @Success 200 {object} util.Response
// @Router /api/teams/{id}/members/{userId} [delete]
func (c *TeamController) RemoveMember(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	teamID, ok := parseTeamID(ctx, "id")
	if !ok {
		return
	}
	if err := c.TeamService.RemoveMember(me.UserID, teamID, ctx.Param("userId")); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"removed": true})
}

// @Summary 团队聊天记录
// @Tags 团队
// @Produce json
// @Security BearerAuth
// @Param id path int true "团队ID"
// @Success 200 {object} util.Response
// @Router /api/teams/{id}/chat [get]
func (c *TeamController) ChatHistory(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	teamID, ok := parseTeamID(ctx, "id")
	if !ok {
		return
	}
	msgs, err := c.TeamService.ChatHistory(me.UserID, teamID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, msgs)
}

type teamChatRequest struct {
	Content string `json:"content" binding:"required"`
}

// @Summary 发送团队消息
// @Tags 团队
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "团队ID"
// @Param message body teamChatRequest true "消息内容"
// @Success 201 {object} util.Response
// @Router /api/teams/{id}/chat [post]
func (c *TeamController) SendChat(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	teamID, ok := parseTeamID(ctx, "id")
	if !ok {
		return
	}
	var req teamChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	msg, err := c.TeamService.SendChat(me.UserID, teamID, req.Content)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, msg)
}
