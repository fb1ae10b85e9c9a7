package controller

import (
	"acadlinker_backend/internal/service"
	"acadlinker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AIController struct {
	AssistantService *service.AssistantService
}

func NewAIController(assistantService *service.AssistantService) *AIController {
	return &AIController{AssistantService: assistantService}
}

type aiAskRequest struct {
	Question string `json:"question" binding:"required"`
}

// @Summary 向团队 AI 助手提问
// @Description 助手掌握团队成员、任务看板、最近群聊和仓库提交动态
// @Tags AI助手
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "团队ID"
// @Param question body aiAskRequest true "问题"
// @Success 200 {object} util.Response
// @Router /api/teams/{id}/ai-chat [post]
func (c *AIController) Ask(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	teamID, ok := parseTeamID(ctx, "id")
	if !ok {
		return
	}

	var req aiAskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.AssistantService.Ask(me.UserID, teamID, req.Question)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, reply)
}

// @Summary AI 助手对话历史
// @Tags AI助手
// @Produce json
// @Security BearerAuth
// @Param id path int true "团队ID"
// @Success 200 {object} util.Response
// @Router /api/teams/{id}/ai-history [get]
func (c *AIController) History(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	teamID, ok := parseTeamID(ctx, "id")
	if !ok {
		return
	}

	history, err := c.AssistantService.History(me.UserID, teamID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, history)
}
