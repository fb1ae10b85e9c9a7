package controller

import (
	"acadlinker_backend/internal/service"
	"acadlinker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MessageController struct {
	MessageService *service.MessageService
}

func NewMessageController(messageService *service.MessageService) *MessageController {
	return &MessageController{MessageService: messageService}
}

// @Summary 私信入口
// @Description 好友列表及各自最近一条消息
// @Tags 私信
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/messages/friends [get]
func (c *MessageController) ChatFriends(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	list, err := c.MessageService.ChatFriends(me.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// @Summary 查看会话
// @Tags 私信
// @Produce json
// @Security BearerAuth
// @Param userId path string true "好友用户ID"
// @Success 200 {object} util.Response
// @Router /api/messages/chat/{userId} [get]
func (c *MessageController) Conversation(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	msgs, err := c.MessageService.Conversation(me.UserID, ctx.Param("userId"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, msgs)
}

// @Summary 发送私信
// @Tags 私信
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param userId path string true "好友用户ID"
// @Param content formData string false "消息内容"
// @Param file formData file false "附件"
// @Success 201 {object} util.Response
// @Router /api/messages/send/{userId} [post]
func (c *MessageController) Send(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	content := ctx.PostForm("content")
	file, _ := ctx.FormFile("file")

	msg, err := c.MessageService.Send(ctx.Request.Context(), me.UserID, ctx.Param("userId"), content, file)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, msg)
}
